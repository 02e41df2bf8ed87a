package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportConfig holds report settings.
type ReportConfig struct {
	ClientID int64

	// Template is the template identifier. Defaults to domain.DefaultReportTemplate.
	Template string
}

// ReportService renders reports for confirmed matches.
type ReportService struct {
	config   ReportConfig
	matches  driven.MatchStore
	docs     driven.DocumentStore
	renderer driven.ReportRenderer
	archive  driven.ReportArchive
	audit    *AuditService
	metrics  driven.Metrics
	now      func() time.Time
}

// NewReportService creates a report service. archive and metrics may be nil.
func NewReportService(
	config ReportConfig,
	matches driven.MatchStore,
	docs driven.DocumentStore,
	renderer driven.ReportRenderer,
	archive driven.ReportArchive,
	audit *AuditService,
	metrics driven.Metrics,
) *ReportService {
	if config.Template == "" {
		config.Template = domain.DefaultReportTemplate
	}
	return &ReportService{
		config:   config,
		matches:  matches,
		docs:     docs,
		renderer: renderer,
		archive:  archive,
		audit:    audit,
		metrics:  orNopMetrics(metrics),
		now:      time.Now,
	}
}

// GenerateReport renders the report for a match's selected document,
// archives it when an archive is configured and records a
// REPORT_GENERATED event.
func (s *ReportService) GenerateReport(ctx context.Context, matchID int64) (*domain.Report, error) {
	match, err := s.matches.Get(ctx, s.config.ClientID, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	if match.SelectedDocumentID == nil {
		return nil, fmt.Errorf("match %d has no selected document: %w", matchID, domain.ErrPrecondition)
	}
	docID := *match.SelectedDocumentID

	doc, err := s.docs.Get(ctx, s.config.ClientID, docID)
	if err != nil {
		return nil, fmt.Errorf("get selected document %d: %w", docID, err)
	}

	now := s.now().UTC()
	content, err := s.renderer.Render(ctx, s.config.Template, domain.ReportData{
		Match:       *match,
		Document:    *doc,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", s.config.Template, err)
	}

	report := &domain.Report{
		MatchID:    matchID,
		DocumentID: docID,
		Template:   s.config.Template,
		Content:    content,
		CreatedAt:  now,
	}

	if s.archive != nil {
		location, err := s.archive.Save(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("archive report: %w", err)
		}
		report.Location = location
	}

	if err := s.audit.Record(ctx, domain.AuditReportGenerated, int64Ptr(docID), int64Ptr(matchID), map[string]any{
		"template": s.config.Template,
		"location": report.Location,
	}); err != nil {
		return nil, err
	}
	s.metrics.ReportGenerated()

	logger.Info("Generated report for match %d (document %d)", matchID, docID)
	return report, nil
}
