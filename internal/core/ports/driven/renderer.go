package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// ReportRenderer renders report templates.
type ReportRenderer interface {
	// Render executes the named template. Returns domain.ErrNotFound for
	// an unknown template identifier.
	Render(ctx context.Context, templateID string, data domain.ReportData) (string, error)
}

// ReportArchive persists rendered reports outside the database.
type ReportArchive interface {
	// Save stores the report and returns its location.
	Save(ctx context.Context, report *domain.Report) (string, error)
}
