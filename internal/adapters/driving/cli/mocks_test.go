package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

type mockIngestService struct {
	results map[string]domain.IngestResult
	summary domain.ScanSummary
	err     error
}

func (m *mockIngestService) IngestFile(_ context.Context, path string) (domain.IngestResult, error) {
	if r, ok := m.results[path]; ok {
		return r, nil
	}
	if m.err != nil {
		return domain.IngestResult{}, m.err
	}
	return domain.IngestResult{}, domain.ErrNotFound
}

func (m *mockIngestService) IngestAll(_ context.Context) (domain.ScanSummary, error) {
	return m.summary, m.err
}

type mockMatchService struct {
	result  domain.MatchResult
	match   *domain.Match
	history []domain.MatchHistoryItem
	err     error

	gotQuery      string
	gotMatchID    int64
	gotDocumentID int64
}

func (m *mockMatchService) Match(_ context.Context, query string) (domain.MatchResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

func (m *mockMatchService) ConfirmMatch(_ context.Context, matchID, documentID int64) (*domain.Match, error) {
	m.gotMatchID, m.gotDocumentID = matchID, documentID
	return m.match, m.err
}

func (m *mockMatchService) GetMatch(_ context.Context, _ int64) (*domain.Match, error) {
	return m.match, m.err
}

func (m *mockMatchService) History(_ context.Context, _, _ int) ([]domain.MatchHistoryItem, int, error) {
	return m.history, len(m.history), m.err
}

type mockReportService struct {
	report *domain.Report
	err    error
}

func (m *mockReportService) GenerateReport(_ context.Context, _ int64) (*domain.Report, error) {
	return m.report, m.err
}

type mockDocumentService struct {
	documents []domain.DocumentSummary
	detail    *domain.DocumentDetail
	err       error

	gotLimit  int
	gotOffset int
}

func (m *mockDocumentService) List(_ context.Context, limit, offset int) ([]domain.DocumentSummary, int, error) {
	m.gotLimit, m.gotOffset = limit, offset
	return m.documents, len(m.documents), m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ int64) (*domain.DocumentDetail, error) {
	return m.detail, m.err
}

type mockAuditService struct {
	events    []domain.AuditEvent
	gotFilter domain.AuditFilter
}

func (m *mockAuditService) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	m.gotFilter = filter
	return m.events, nil
}

type mockRuleService struct {
	rules []domain.ExtractionRule
	added []domain.ExtractionRule
	err   error
}

func (m *mockRuleService) List(_ context.Context) ([]domain.ExtractionRule, error) {
	return m.rules, m.err
}

func (m *mockRuleService) Add(_ context.Context, rule domain.ExtractionRule) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.added = append(m.added, rule)
	return int64(len(m.rules) + len(m.added)), nil
}

type mockRuntime struct {
	served bool
}

func (m *mockRuntime) Serve(_ context.Context) error {
	m.served = true
	return nil
}

type testServices struct {
	ingest  *mockIngestService
	match   *mockMatchService
	report  *mockReportService
	docs    *mockDocumentService
	audit   *mockAuditService
	rules   *mockRuleService
	runtime *mockRuntime
}

// setupTestServices installs mock services and returns them with a cleanup
// function restoring the previous state.
func setupTestServices() (*testServices, func()) {
	selected := int64(2)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ts := &testServices{
		ingest: &mockIngestService{
			results: map[string]domain.IngestResult{
				"/pdfs/a.pdf": {Path: "/pdfs/a.pdf", Outcome: domain.IngestNew, DocumentID: 1, Version: 1},
			},
			summary: domain.ScanSummary{Root: "/pdfs", Scanned: 3, Ingested: 1, Skipped: 1, Failed: 1,
				Failures: []domain.FileFailure{{Path: "/pdfs/bad.pdf", Error: "missing required fields: product_codes"}}},
		},
		match: &mockMatchService{
			result: domain.MatchResult{
				MatchID:   7,
				QueryText: "membrane oxygenator",
				Candidates: []domain.Candidate{
					{DocumentID: 2, DocumentName: "Affinity Oxygenator", RegistrationNumber: "K123456",
						ManufacturerName: "Medtronic", Score: 0.8123, Rationale: "Matched terms in document name: oxygenator"},
				},
			},
			match: &domain.Match{ID: 7, CandidateIDs: []int64{2, 3}},
			history: []domain.MatchHistoryItem{
				{ID: 7, QueryText: "membrane oxygenator", CreatedAt: now, CandidateCount: 2,
					SelectedDocumentID: &selected, SelectedDocumentName: "Affinity Oxygenator"},
			},
		},
		report: &mockReportService{report: &domain.Report{
			MatchID: 7, DocumentID: 2, Content: "# Document Match Report\n\nAffinity Oxygenator\n",
		}},
		docs: &mockDocumentService{
			documents: []domain.DocumentSummary{
				{ID: 2, FilePath: "/pdfs/a.pdf", Version: 1, DocumentName: "Affinity Oxygenator", RegistrationNumber: "K123456"},
			},
			detail: &domain.DocumentDetail{
				Document: domain.Document{ID: 2, Version: 1, FilePath: "/pdfs/a.pdf",
					Fields: domain.DocumentFields{DocumentName: "Affinity Oxygenator", RegistrationNumber: "K123456"}},
				FullTextExcerpt: "510(k) Summary",
			},
		},
		audit: &mockAuditService{events: []domain.AuditEvent{
			{ID: 1, Type: domain.AuditIngest, DocumentID: &selected, Payload: map[string]any{"file_path": "/pdfs/a.pdf"}, CreatedAt: now},
		}},
		rules:   &mockRuleService{rules: []domain.ExtractionRule{{ID: 1, FieldName: "document_name", Pattern: `Name:(?P<value>.+)`, Priority: 1}}},
		runtime: &mockRuntime{},
	}

	old := svc
	svc = &Services{
		Ingest:   ts.ingest,
		Match:    ts.match,
		Report:   ts.report,
		Document: ts.docs,
		Audit:    ts.audit,
		Rules:    ts.rules,
		Runtime:  ts.runtime,
	}
	return ts, func() {
		svc = old
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
