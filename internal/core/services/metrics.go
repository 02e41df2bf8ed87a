package services

import (
	"time"

	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// nopMetrics discards all measurements.
type nopMetrics struct{}

func (nopMetrics) IngestCompleted(string) {}
func (nopMetrics) IngestFailed() {}
func (nopMetrics) SearchObserved(time.Duration, int) {}
func (nopMetrics) SelectionRecorded() {}
func (nopMetrics) ReportGenerated() {}

func orNopMetrics(m driven.Metrics) driven.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
