package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Ingest triggers recorded in INGEST audit payloads.
const (
	TriggerManual = "manual"
	TriggerScan   = "scan"
	TriggerWatch  = "watch"
)

// IngestConfig holds the ingestion settings.
type IngestConfig struct {
	// Root is the directory scanned by IngestAll and watched in live mode.
	Root string

	// ClientID is the partition every ingested document belongs to.
	ClientID int64
}

// IngestService turns PDF files into versioned documents.
type IngestService struct {
	config    IngestConfig
	docs      driven.DocumentStore
	rules     driven.RuleStore
	files     driven.FileSource
	extractor driven.TextExtractor
	audit     *AuditService
	metrics   driven.Metrics

	engine atomic.Pointer[RuleEngine]
	locks  *pathLocks
	now    func() time.Time
}

// NewIngestService creates an ingestion pipeline. The engine is used until
// SwapRules or ReloadRules replaces it. metrics may be nil.
func NewIngestService(
	config IngestConfig,
	engine *RuleEngine,
	docs driven.DocumentStore,
	rules driven.RuleStore,
	files driven.FileSource,
	extractor driven.TextExtractor,
	audit *AuditService,
	metrics driven.Metrics,
) *IngestService {
	if config.Root != "" {
		if abs, err := filepath.Abs(config.Root); err == nil {
			config.Root = abs
		}
	}
	s := &IngestService{
		config:    config,
		docs:      docs,
		rules:     rules,
		files:     files,
		extractor: extractor,
		audit:     audit,
		metrics:   orNopMetrics(metrics),
		locks:     newPathLocks(),
		now:       time.Now,
	}
	s.engine.Store(engine)
	return s
}

// Root returns the absolute directory this service ingests from.
func (s *IngestService) Root() string {
	return s.config.Root
}

// SwapRules atomically replaces the rule engine. Ingests already past
// extraction finish with the previous engine.
func (s *IngestService) SwapRules(engine *RuleEngine) {
	s.engine.Store(engine)
}

// ReloadRules recompiles the client's rule table and swaps it in.
// The current engine is kept if the table does not compile.
func (s *IngestService) ReloadRules(ctx context.Context) error {
	rules, err := s.rules.ListRules(ctx, s.config.ClientID)
	if err != nil {
		return fmt.Errorf("list extraction rules: %w", err)
	}
	engine, err := CompileRules(rules)
	if err != nil {
		return fmt.Errorf("compile extraction rules: %w", err)
	}
	s.SwapRules(engine)
	logger.Info("Reloaded %d extraction rules", len(rules))
	return nil
}

// IngestFile ingests a single file. A file whose modification time is not
// newer than the recorded one is skipped; otherwise a new document version
// is stored, the file pointer is moved to it and an INGEST event is recorded.
// Concurrent calls for the same path are serialised.
func (s *IngestService) IngestFile(ctx context.Context, path string) (domain.IngestResult, error) {
	if path == "" {
		return domain.IngestResult{}, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := s.checkPath(path); err != nil {
		return domain.IngestResult{Path: path}, err
	}

	unlock := s.locks.Lock(path)
	defer unlock()

	result, err := s.ingest(ctx, path)
	if err != nil {
		s.metrics.IngestFailed()
		return domain.IngestResult{Path: path}, err
	}
	s.metrics.IngestCompleted(string(result.Outcome))
	return result, nil
}

// checkPath rejects paths that are not PDFs under the configured root.
func (s *IngestService) checkPath(path string) error {
	if !domain.IsPDF(path) {
		return fmt.Errorf("%w: %s is not a PDF", domain.ErrInvalidInput, path)
	}
	if s.config.Root == "" {
		return nil
	}
	rel, err := filepath.Rel(s.config.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s is outside %s", domain.ErrInvalidInput, path, s.config.Root)
	}
	return nil
}

func (s *IngestService) ingest(ctx context.Context, path string) (domain.IngestResult, error) {
	info, err := s.files.Stat(ctx, path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir {
		return domain.IngestResult{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	ptr, err := s.docs.GetPointer(ctx, s.config.ClientID, path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("get file pointer: %w", err)
	}
	if ptr != nil && !info.ModTime.After(ptr.LastModified) {
		logger.Debug("Skipping unchanged %s (version %d)", path, ptr.Version)
		return domain.IngestResult{
			Path:       path,
			Outcome:    domain.IngestSkip,
			DocumentID: ptr.DocumentID,
			Version:    ptr.Version,
		}, nil
	}

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("extract text from %s: %w", path, err)
	}

	fields, err := s.engine.Load().Extract(text)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("extract fields from %s: %w", path, err)
	}

	// Versions are numbered past any row left behind by an earlier
	// attempt that stored the version but never moved the pointer.
	latest, err := s.docs.LatestVersion(ctx, s.config.ClientID, path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("get latest version: %w", err)
	}
	outcome, version := domain.IngestNew, latest+1
	if ptr != nil {
		outcome = domain.IngestReingest
	}

	now := s.now().UTC()
	doc := &domain.Document{
		ClientID:  s.config.ClientID,
		FilePath:  path,
		Version:   version,
		Fields:    fields.Fields(),
		FullText:  fields[domain.FieldFullText],
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.docs.InsertVersion(ctx, doc)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("insert document version: %w", err)
	}

	// The event is recorded before the pointer moves so a failed append
	// leaves the file eligible for the next ingest.
	payload := map[string]any{
		"file_path": path,
		"version":   version,
		"outcome":   string(outcome),
		"trigger":   triggerFrom(ctx).name,
	}
	if scanID := triggerFrom(ctx).scanID; scanID != "" {
		payload["scan_id"] = scanID
	}
	if err := s.audit.Record(ctx, domain.AuditIngest, int64Ptr(id), nil, payload); err != nil {
		return domain.IngestResult{}, err
	}

	if err := s.docs.UpsertPointer(ctx, domain.FilePointer{
		ClientID:     s.config.ClientID,
		FilePath:     path,
		LastModified: info.ModTime,
		DocumentID:   id,
		Version:      version,
	}); err != nil {
		return domain.IngestResult{}, fmt.Errorf("upsert file pointer: %w", err)
	}

	logger.Info("Ingested %s as document %d (version %d)", path, id, version)
	return domain.IngestResult{
		Path:       path,
		Outcome:    outcome,
		DocumentID: id,
		Version:    version,
	}, nil
}

// IngestAll ingests every PDF under the configured root in path order.
// A failing file is logged and recorded in the summary; the scan continues.
// A missing root yields an empty summary.
func (s *IngestService) IngestAll(ctx context.Context) (domain.ScanSummary, error) {
	summary := domain.ScanSummary{
		ScanID:    uuid.NewString(),
		Root:      s.config.Root,
		StartedAt: s.now().UTC(),
	}
	logger.Section("Full scan")

	files, err := s.files.List(ctx, s.config.Root)
	if err != nil {
		return summary, fmt.Errorf("list %s: %w", s.config.Root, err)
	}

	ctx = withTrigger(ctx, TriggerScan, summary.ScanID)
	for _, f := range files {
		if f.IsDir || !domain.IsPDF(f.Path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			summary.EndedAt = s.now().UTC()
			return summary, err
		}

		summary.Scanned++
		result, err := s.IngestFile(ctx, f.Path)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				summary.EndedAt = s.now().UTC()
				return summary, err
			}
			summary.Failed++
			summary.Failures = append(summary.Failures, domain.FileFailure{Path: f.Path, Error: err.Error()})
			logger.Warn("Failed to ingest %s: %v", f.Path, err)
			continue
		}
		if result.Outcome == domain.IngestSkip {
			summary.Skipped++
		} else {
			summary.Ingested++
		}
	}

	summary.EndedAt = s.now().UTC()
	logger.Info("Scan %s complete: %d scanned, %d ingested, %d skipped, %d failed",
		summary.ScanID, summary.Scanned, summary.Ingested, summary.Skipped, summary.Failed)
	return summary, nil
}

type ingestTrigger struct {
	name   string
	scanID string
}

type triggerKey struct{}

func withTrigger(ctx context.Context, name, scanID string) context.Context {
	return context.WithValue(ctx, triggerKey{}, ingestTrigger{name: name, scanID: scanID})
}

func triggerFrom(ctx context.Context) ingestTrigger {
	if t, ok := ctx.Value(triggerKey{}).(ingestTrigger); ok {
		return t
	}
	return ingestTrigger{name: TriggerManual}
}
