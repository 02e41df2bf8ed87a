package domain

import "time"

// AuditEventType identifies the action an audit event records.
type AuditEventType string

const (
	AuditIngest          AuditEventType = "INGEST"
	AuditSearch          AuditEventType = "SEARCH"
	AuditSelect          AuditEventType = "SELECT"
	AuditReportGenerated AuditEventType = "REPORT_GENERATED"
)

// Valid reports whether t is a known event type.
func (t AuditEventType) Valid() bool {
	switch t {
	case AuditIngest, AuditSearch, AuditSelect, AuditReportGenerated:
		return true
	}
	return false
}

// AuditEvent is an append-only record of a significant action.
// Events are ordered by ID, which reflects insertion order.
type AuditEvent struct {
	ID         int64
	Type       AuditEventType
	DocumentID *int64
	MatchID    *int64
	Payload    map[string]any
	CreatedAt  time.Time
}

// AuditFilter narrows an audit listing. Zero values match everything.
type AuditFilter struct {
	Type       AuditEventType
	DocumentID *int64
	MatchID    *int64
	Limit      int
}
