package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// AuditStore is the append-only audit trail.
type AuditStore interface {
	// Append stores an event and returns its assigned ID.
	Append(ctx context.Context, event *domain.AuditEvent) (int64, error)

	// List returns events matching the filter in insertion order.
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
}
