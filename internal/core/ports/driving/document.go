package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// DocumentService provides read access to stored documents.
type DocumentService interface {
	// List returns a page of documents and the total count.
	List(ctx context.Context, limit, offset int) ([]domain.DocumentSummary, int, error)

	// Get retrieves a document with a text excerpt.
	Get(ctx context.Context, id int64) (*domain.DocumentDetail, error)
}
