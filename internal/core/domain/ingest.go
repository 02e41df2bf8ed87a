package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// IngestOutcome classifies what ingesting a file did.
type IngestOutcome string

const (
	// IngestNew means the path had never been ingested.
	IngestNew IngestOutcome = "new"

	// IngestSkip means the file was unchanged since the last ingest.
	IngestSkip IngestOutcome = "skip"

	// IngestReingest means a changed file produced a new version.
	IngestReingest IngestOutcome = "reingest"
)

// IngestResult describes the result of ingesting a single file.
type IngestResult struct {
	Path    string
	Outcome IngestOutcome

	// DocumentID and Version refer to the pointed-to document.
	// For a skip they are the existing current version.
	DocumentID int64
	Version    int
}

// FileFailure records a file that could not be ingested during a scan.
type FileFailure struct {
	Path  string
	Error string
}

// ScanSummary describes a full directory scan.
type ScanSummary struct {
	ScanID    string
	Root      string
	Scanned   int
	Ingested  int
	Skipped   int
	Failed    int
	Failures  []FileFailure
	StartedAt time.Time
	EndedAt   time.Time
}

// FileInfo describes a file seen by a file source.
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
	IsDir   bool
}

// FileEventKind is the kind of change a FileEvent reports.
type FileEventKind string

const (
	FileCreated  FileEventKind = "created"
	FileModified FileEventKind = "modified"
	FileRemoved  FileEventKind = "removed"
)

// FileEvent is a filesystem change notification.
type FileEvent struct {
	Path  string
	Kind  FileEventKind
	IsDir bool
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
