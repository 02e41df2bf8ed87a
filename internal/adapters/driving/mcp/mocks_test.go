package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// mockMatchService is a mock implementation of driving.MatchService.
type mockMatchService struct {
	result  domain.MatchResult
	match   *domain.Match
	history []domain.MatchHistoryItem
	err     error

	gotQuery string
}

func (m *mockMatchService) Match(_ context.Context, query string) (domain.MatchResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

func (m *mockMatchService) ConfirmMatch(_ context.Context, _, _ int64) (*domain.Match, error) {
	return m.match, m.err
}

func (m *mockMatchService) GetMatch(_ context.Context, _ int64) (*domain.Match, error) {
	return m.match, m.err
}

func (m *mockMatchService) History(_ context.Context, _, _ int) ([]domain.MatchHistoryItem, int, error) {
	return m.history, len(m.history), m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	report *domain.Report
	err    error
}

func (m *mockReportService) GenerateReport(_ context.Context, _ int64) (*domain.Report, error) {
	return m.report, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.DocumentSummary
	total     int
	detail    *domain.DocumentDetail
	err       error

	gotLimit  int
	gotOffset int
	gotID     int64
}

func (m *mockDocumentService) List(_ context.Context, limit, offset int) ([]domain.DocumentSummary, int, error) {
	m.gotLimit, m.gotOffset = limit, offset
	return m.documents, m.total, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id int64) (*domain.DocumentDetail, error) {
	m.gotID = id
	return m.detail, m.err
}

func newTestServer(t *testing.T, match *mockMatchService, report *mockReportService, docs *mockDocumentService) *Server {
	t.Helper()
	if match == nil {
		match = &mockMatchService{}
	}
	if report == nil {
		report = &mockReportService{}
	}
	if docs == nil {
		docs = &mockDocumentService{}
	}
	s, err := NewServer(&Ports{Match: match, Report: report, Document: docs})
	require.NoError(t, err)
	return s
}
