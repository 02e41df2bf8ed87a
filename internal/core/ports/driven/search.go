package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// SearchEngine ranks stored documents against free text.
// Hits are ordered by descending score, ties broken by ascending document ID.
type SearchEngine interface {
	Search(ctx context.Context, query string, limit int, clientID int64) ([]domain.SearchHit, error)
}
