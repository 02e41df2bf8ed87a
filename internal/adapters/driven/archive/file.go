package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure FileArchive implements the interface.
var _ driven.ReportArchive = (*FileArchive)(nil)

// FileArchive writes reports into a directory.
type FileArchive struct {
	dir string
}

// NewFileArchive creates an archive rooted at dir. The directory is
// created on first save.
func NewFileArchive(dir string) *FileArchive {
	return &FileArchive{dir: dir}
}

// Save writes the report and returns its path.
func (a *FileArchive) Save(_ context.Context, report *domain.Report) (string, error) {
	if err := os.MkdirAll(a.dir, 0750); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(a.dir, reportName(report))
	if err := os.WriteFile(path, []byte(report.Content), 0600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// reportName is unique per match and generation second.
func reportName(report *domain.Report) string {
	return fmt.Sprintf("report_%d_%d_%s.md",
		report.MatchID, report.DocumentID, report.CreatedAt.UTC().Format("20060102T150405"))
}

// formatTimestamp is used in object metadata.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
