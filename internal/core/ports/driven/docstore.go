package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// DocumentStore persists versioned documents and the file pointers
// that track the current version of each ingested path.
type DocumentStore interface {
	// GetPointer returns the pointer for a path.
	// Returns nil and no error if the path has never been ingested.
	GetPointer(ctx context.Context, clientID int64, filePath string) (*domain.FilePointer, error)

	// InsertVersion appends a document version and returns its assigned ID.
	InsertVersion(ctx context.Context, doc *domain.Document) (int64, error)

	// LatestVersion returns the highest stored version for a path, current or
	// not. Returns 0 if the path has no versions.
	LatestVersion(ctx context.Context, clientID int64, filePath string) (int, error)

	// UpsertPointer creates or replaces the pointer for (ClientID, FilePath)
	// in a single atomic write.
	UpsertPointer(ctx context.Context, ptr domain.FilePointer) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, clientID, id int64) (*domain.Document, error)

	// GetByIDs retrieves documents in the order of ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, clientID int64, ids []int64) ([]domain.Document, error)

	// List returns a page of documents ordered by ID ascending and the total count.
	List(ctx context.Context, clientID int64, limit, offset int) ([]domain.DocumentSummary, int, error)
}
