package domain

import "time"

// DefaultReportTemplate is the template identifier used for match reports.
const DefaultReportTemplate = "report.md"

// Report is a rendered, human-readable record of a confirmed match.
type Report struct {
	MatchID    int64
	DocumentID int64
	Template   string
	Content    string
	CreatedAt  time.Time

	// Location is where the report was archived. Empty when not archived.
	Location string
}

// ReportData is the input a report template is rendered with.
type ReportData struct {
	Match       Match
	Document    Document
	GeneratedAt time.Time
}
