package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// FileSource gives the core access to the directory being ingested.
type FileSource interface {
	// Stat returns file information for a single path.
	Stat(ctx context.Context, path string) (domain.FileInfo, error)

	// List returns every regular file under root, recursively, sorted by path.
	// A missing root returns no files and no error.
	List(ctx context.Context, root string) ([]domain.FileInfo, error)

	// Watch subscribes to changes under root, recursively. The returned
	// channel is closed when ctx is cancelled or the source is closed.
	Watch(ctx context.Context, root string) (<-chan domain.FileEvent, error)

	// Close releases watch resources.
	Close() error
}
