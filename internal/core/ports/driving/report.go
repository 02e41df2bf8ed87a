package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// ReportService produces reports for confirmed matches.
type ReportService interface {
	// GenerateReport renders the report for a match. Returns
	// domain.ErrPrecondition if no document has been selected.
	GenerateReport(ctx context.Context, matchID int64) (*domain.Report, error)
}
