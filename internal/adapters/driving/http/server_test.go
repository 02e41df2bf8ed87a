package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

type testServer struct {
	*Server
	ingest *mockIngestService
	match  *mockMatchService
	report *mockReportService
	docs   *mockDocumentService
	audit  *mockAuditService
	logs   *observer.ObservedLogs
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	ts := &testServer{
		ingest: &mockIngestService{},
		match:  &mockMatchService{},
		report: &mockReportService{},
		docs:   &mockDocumentService{},
		audit:  &mockAuditService{},
		logs:   logs,
	}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("docmatch_reports_total 0\n"))
	})

	server, err := NewServer(&Ports{
		Ingest:   ts.ingest,
		Match:    ts.match,
		Report:   ts.report,
		Document: ts.docs,
		Audit:    ts.audit,
	}, zap.New(core), &Config{Host: "127.0.0.1", Port: 0, Metrics: metrics})
	require.NoError(t, err)
	ts.Server = server
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewServer(t *testing.T) {
	ports := &Ports{
		Ingest:   &mockIngestService{},
		Match:    &mockMatchService{},
		Report:   &mockReportService{},
		Document: &mockDocumentService{},
		Audit:    &mockAuditService{},
	}

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		server, err := NewServer(ports, zap.NewNop(), nil)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", server.config.Host)
		assert.Equal(t, 8080, server.config.Port)
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(ports, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("returns error when a port is missing", func(t *testing.T) {
		_, err := NewServer(&Ports{Match: &mockMatchService{}}, zap.NewNop(), nil)
		require.Error(t, err)
	})
}

func TestHandleHealth(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMetricsRoute(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docmatch_reports_total")
}

func TestHandleIngest(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.ingest.result = domain.IngestResult{Path: "/pdfs/a.pdf", Outcome: domain.IngestReingest, DocumentID: 4, Version: 2}

		rec := ts.do(http.MethodPost, "/ingest", `{"path":"/pdfs/a.pdf"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/pdfs/a.pdf", ts.ingest.gotPath)

		resp := decode[IngestResponse](t, rec)
		assert.Equal(t, "reingest", resp.Outcome)
		assert.Equal(t, int64(4), resp.DocumentID)
		assert.Equal(t, 2, resp.Version)
	})

	t.Run("full scan without body", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.ingest.summary = domain.ScanSummary{
			ScanID:   "scan-1",
			Scanned:  2,
			Ingested: 1,
			Failed:   1,
			Failures: []domain.FileFailure{{Path: "/pdfs/bad.pdf", Error: "missing required fields: k_number"}},
		}

		rec := ts.do(http.MethodPost, "/ingest", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ts.ingest.scanCalls)

		resp := decode[ScanResponse](t, rec)
		assert.Equal(t, "scan-1", resp.ScanID)
		assert.Equal(t, 1, resp.Failed)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, "/pdfs/bad.pdf", resp.Failures[0].Path)
	})

	t.Run("extraction failure is unprocessable", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.ingest.err = fmt.Errorf("extract fields: %w", &domain.ExtractionError{MissingFields: []string{"k_number"}})

		rec := ts.do(http.MethodPost, "/ingest", `{"path":"/pdfs/bad.pdf"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "k_number")
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodPost, "/ingest", `{"path":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleDocuments(t *testing.T) {
	t.Run("list with paging", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.docs.documents = []domain.DocumentSummary{{ID: 1, DocumentName: "Pump", Version: 3}}
		ts.docs.total = 11

		rec := ts.do(http.MethodGet, "/documents?limit=1&offset=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ts.docs.gotLimit)
		assert.Equal(t, 10, ts.docs.gotOffset)

		resp := decode[DocumentListResponse](t, rec)
		assert.Equal(t, 11, resp.Total)
		require.Len(t, resp.Documents, 1)
		assert.Equal(t, "Pump", resp.Documents[0].DocumentName)
	})

	t.Run("default page size", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodGet, "/documents", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, defaultPageSize, ts.docs.gotLimit)
	})

	t.Run("invalid limit", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodGet, "/documents?limit=ten", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service rejects page", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.docs.err = fmt.Errorf("%w: limit must be between 1 and 500", domain.ErrInvalidInput)

		rec := ts.do(http.MethodGet, "/documents?limit=1000", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.docs.detail = &domain.DocumentDetail{
			Document: domain.Document{
				ID:     5,
				Fields: domain.DocumentFields{RegistrationNumber: "K555555", ProductCodes: "DTZ, DWF"},
			},
			FullTextExcerpt: "510(k) SUMMARY",
		}

		rec := ts.do(http.MethodGet, "/documents/5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[DocumentDetailResponse](t, rec)
		assert.Equal(t, "K555555", resp.RegistrationNumber)
		assert.Equal(t, "DTZ, DWF", resp.ProductCodes)
		assert.Equal(t, "510(k) SUMMARY", resp.FullTextExcerpt)
	})

	t.Run("get unknown", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.docs.err = fmt.Errorf("get document 9: %w", domain.ErrNotFound)

		rec := ts.do(http.MethodGet, "/documents/9", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get bad id", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodGet, "/documents/-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleMatch(t *testing.T) {
	t.Run("creates a match", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.result = domain.MatchResult{
			MatchID:   3,
			QueryText: "oxygenator",
			Candidates: []domain.Candidate{
				{DocumentID: 1, DocumentName: "Affinity", Score: 0.4, Rationale: "Matched terms in document name: oxygenator"},
			},
		}

		rec := ts.do(http.MethodPost, "/match", `{"query":"oxygenator"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "oxygenator", ts.match.gotQuery)

		resp := decode[MatchResponse](t, rec)
		assert.Equal(t, int64(3), resp.MatchID)
		require.Len(t, resp.Candidates, 1)
		assert.Equal(t, 0.4, resp.Candidates[0].Score)
	})

	t.Run("empty query", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodPost, "/match", `{"query":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, ts.match.gotQuery)
	})

	t.Run("storage failure is hidden", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.err = errors.New("database is locked")

		rec := ts.do(http.MethodPost, "/match", `{"query":"pump"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database is locked")

		failed := ts.logs.FilterMessage("http request failed").All()
		require.Len(t, failed, 1)
		assert.Equal(t, "database is locked", failed[0].ContextMap()["error"])
	})
}

func TestHandleMatches(t *testing.T) {
	selected := int64(2)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("history", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.history = []domain.MatchHistoryItem{
			{ID: 4, QueryText: "pump", CandidateCount: 2, SelectedDocumentID: &selected, SelectedDocumentName: "Pump"},
		}
		ts.match.total = 4

		rec := ts.do(http.MethodGet, "/matches?limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ts.match.gotLimit)

		resp := decode[MatchHistoryResponse](t, rec)
		assert.Equal(t, 4, resp.Total)
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "Pump", resp.Matches[0].SelectedDocumentName)
	})

	t.Run("get", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.match = &domain.Match{ID: 4, QueryText: "pump", CandidateIDs: []int64{2, 3}, CreatedAt: now}

		rec := ts.do(http.MethodGet, "/matches/4", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(4), ts.match.gotMatchID)

		resp := decode[MatchDetailResponse](t, rec)
		assert.Equal(t, []int64{2, 3}, resp.CandidateIDs)
		assert.Nil(t, resp.SelectedDocumentID)
	})

	t.Run("confirm", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.match = &domain.Match{ID: 4, CandidateIDs: []int64{2, 3}, SelectedDocumentID: &selected, SelectedAt: &now}

		rec := ts.do(http.MethodPut, "/matches/4", `{"document_id":2}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(4), ts.match.gotMatchID)
		assert.Equal(t, int64(2), ts.match.gotDocumentID)

		resp := decode[MatchDetailResponse](t, rec)
		require.NotNil(t, resp.SelectedDocumentID)
		assert.Equal(t, int64(2), *resp.SelectedDocumentID)
	})

	t.Run("confirm without document", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodPut, "/matches/4", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("confirm unknown match", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.match.err = domain.ErrNotFound

		rec := ts.do(http.MethodPut, "/matches/99", `{"document_id":2}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleReport(t *testing.T) {
	report := &domain.Report{MatchID: 4, DocumentID: 2, Content: "# Document Match Report\n", Location: "/reports/r.md"}

	t.Run("json", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.report.report = report

		rec := ts.do(http.MethodGet, "/matches/4/report", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ReportResponse](t, rec)
		assert.Equal(t, "/reports/r.md", resp.Location)
		assert.Contains(t, resp.Content, "Document Match Report")
	})

	t.Run("markdown", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.report.report = report

		rec := ts.do(http.MethodGet, "/matches/4/report?format=markdown", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "# Document Match Report\n", rec.Body.String())
	})

	t.Run("unconfirmed match conflicts", func(t *testing.T) {
		ts := setupTestServer(t)
		ts.report.err = fmt.Errorf("%w: match 4 has no selected document", domain.ErrPrecondition)

		rec := ts.do(http.MethodGet, "/matches/4/report", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "no selected document")
	})
}

func TestHandleAudit(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		ts := setupTestServer(t)
		matchID := int64(3)
		ts.audit.events = []domain.AuditEvent{
			{ID: 1, Type: domain.AuditSearch, MatchID: &matchID, Payload: map[string]any{"query": "pump"}},
		}

		rec := ts.do(http.MethodGet, "/audit?type=search&match_id=3&limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, domain.AuditSearch, ts.audit.gotFilter.Type)
		require.NotNil(t, ts.audit.gotFilter.MatchID)
		assert.Equal(t, int64(3), *ts.audit.gotFilter.MatchID)
		assert.Nil(t, ts.audit.gotFilter.DocumentID)
		assert.Equal(t, 10, ts.audit.gotFilter.Limit)

		resp := decode[AuditListResponse](t, rec)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "SEARCH", resp.Events[0].Type)
		assert.Equal(t, "pump", resp.Events[0].Payload["query"])
	})

	t.Run("unknown type", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodGet, "/audit?type=DELETE", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad document id", func(t *testing.T) {
		ts := setupTestServer(t)

		rec := ts.do(http.MethodGet, "/audit?document_id=x", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestLogging(t *testing.T) {
	ts := setupTestServer(t)

	ts.do(http.MethodGet, "/health", "")
	ts.do(http.MethodGet, "/documents/abc", "")

	entries := ts.logs.FilterMessage("http request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/health", entries[0].ContextMap()["uri"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrPrecondition), http.StatusConflict},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{&domain.ExtractionError{MissingFields: []string{"x"}}, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
