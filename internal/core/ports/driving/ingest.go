package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// IngestService turns PDF files into versioned documents.
type IngestService interface {
	// IngestFile ingests one file. Unchanged files are skipped; changed
	// files produce a new document version.
	IngestFile(ctx context.Context, path string) (domain.IngestResult, error)

	// IngestAll scans the configured directory and ingests every PDF.
	// Per-file failures are reported in the summary and do not stop the scan.
	IngestAll(ctx context.Context) (domain.ScanSummary, error)
}

// Watcher keeps the store in step with the PDF directory while running.
type Watcher interface {
	// Start subscribes to the directory and begins ingesting changes.
	Start(ctx context.Context) error

	// Stop ends the subscription and waits for in-flight work, bounded by ctx.
	Stop(ctx context.Context) error
}
