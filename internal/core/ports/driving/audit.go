package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// AuditService reads the audit trail.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
}
