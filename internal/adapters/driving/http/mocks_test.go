package http

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

type mockIngestService struct {
	result  domain.IngestResult
	summary domain.ScanSummary
	err     error

	gotPath   string
	scanCalls int
}

func (m *mockIngestService) IngestFile(_ context.Context, path string) (domain.IngestResult, error) {
	m.gotPath = path
	return m.result, m.err
}

func (m *mockIngestService) IngestAll(_ context.Context) (domain.ScanSummary, error) {
	m.scanCalls++
	return m.summary, m.err
}

type mockMatchService struct {
	result  domain.MatchResult
	match   *domain.Match
	history []domain.MatchHistoryItem
	total   int
	err     error

	gotQuery      string
	gotMatchID    int64
	gotDocumentID int64
	gotLimit      int
	gotOffset     int
}

func (m *mockMatchService) Match(_ context.Context, query string) (domain.MatchResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

func (m *mockMatchService) ConfirmMatch(_ context.Context, matchID, documentID int64) (*domain.Match, error) {
	m.gotMatchID, m.gotDocumentID = matchID, documentID
	return m.match, m.err
}

func (m *mockMatchService) GetMatch(_ context.Context, matchID int64) (*domain.Match, error) {
	m.gotMatchID = matchID
	return m.match, m.err
}

func (m *mockMatchService) History(_ context.Context, limit, offset int) ([]domain.MatchHistoryItem, int, error) {
	m.gotLimit, m.gotOffset = limit, offset
	return m.history, m.total, m.err
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
	total     int
	detail    *domain.DocumentDetail
	err       error

	gotLimit  int
	gotOffset int
}

func (m *mockDocumentService) List(_ context.Context, limit, offset int) ([]domain.DocumentSummary, int, error) {
	m.gotLimit, m.gotOffset = limit, offset
	return m.documents, m.total, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ int64) (*domain.DocumentDetail, error) {
	return m.detail, m.err
}

type mockAuditService struct {
	events []domain.AuditEvent
	err    error

	gotFilter domain.AuditFilter
}

func (m *mockAuditService) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	m.gotFilter = filter
	return m.events, m.err
}
