package driven

import "time"

// Metrics receives operational measurements from core services.
type Metrics interface {
	IngestCompleted(outcome string)
	IngestFailed()
	SearchObserved(d time.Duration, hits int)
	SelectionRecorded()
	ReportGenerated()
}
