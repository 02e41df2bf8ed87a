package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleIngest ingests one file, or scans the PDF directory when no path is given.
func (s *Server) handleIngest(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid ingest request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()

	if strings.TrimSpace(req.Path) == "" {
		summary, err := s.ports.Ingest.IngestAll(ctx)
		if err != nil {
			return toHTTPError(err)
		}
		resp := ScanResponse{
			ScanID:    summary.ScanID,
			Root:      summary.Root,
			Scanned:   summary.Scanned,
			Ingested:  summary.Ingested,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
			StartedAt: summary.StartedAt,
			EndedAt:   summary.EndedAt,
		}
		for _, f := range summary.Failures {
			resp.Failures = append(resp.Failures, FailureResponse{Path: f.Path, Error: f.Error})
		}
		return c.JSON(http.StatusOK, resp)
	}

	result, err := s.ports.Ingest.IngestFile(ctx, req.Path)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, IngestResponse{
		Path:       result.Path,
		Outcome:    string(result.Outcome),
		DocumentID: result.DocumentID,
		Version:    result.Version,
	})
}

func (s *Server) handleListDocuments(c echo.Context) error {
	limit, offset, err := page(c)
	if err != nil {
		return err
	}

	docs, total, err := s.ports.Document.List(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}

	resp := DocumentListResponse{
		Documents: make([]DocumentResponse, len(docs)),
		Total:     total,
	}
	for i, d := range docs {
		resp.Documents[i] = DocumentResponse{
			ID:                 d.ID,
			FilePath:           d.FilePath,
			Version:            d.Version,
			DocumentName:       d.DocumentName,
			RegistrationNumber: d.RegistrationNumber,
			ManufacturerName:   d.ManufacturerName,
			ClassificationCode: d.ClassificationCode,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	doc, err := s.ports.Document.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	f := doc.Fields
	return c.JSON(http.StatusOK, DocumentDetailResponse{
		ID:                  doc.ID,
		FilePath:            doc.FilePath,
		Version:             doc.Version,
		DocumentName:        f.DocumentName,
		DocumentType:        f.DocumentType,
		RegistrationNumber:  f.RegistrationNumber,
		RegulationNumber:    f.RegulationNumber,
		RegulationName:      f.RegulationName,
		ClassificationCode:  f.ClassificationCode,
		ManufacturerName:    f.ManufacturerName,
		ManufacturerAddress: f.ManufacturerAddress,
		ProductCodes:        f.ProductCodes,
		IndicationsForUse:   f.IndicationsForUse,
		FullTextExcerpt:     doc.FullTextExcerpt,
		CreatedAt:           doc.CreatedAt,
	})
}

func (s *Server) handleMatch(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid match request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}

	result, err := s.ports.Match.Match(c.Request().Context(), req.Query)
	if err != nil {
		return toHTTPError(err)
	}

	resp := MatchResponse{
		MatchID:    result.MatchID,
		Query:      result.QueryText,
		Candidates: make([]CandidateResponse, len(result.Candidates)),
	}
	for i, cand := range result.Candidates {
		resp.Candidates[i] = CandidateResponse{
			DocumentID:         cand.DocumentID,
			DocumentName:       cand.DocumentName,
			DocumentType:       cand.DocumentType,
			RegistrationNumber: cand.RegistrationNumber,
			ManufacturerName:   cand.ManufacturerName,
			Score:              cand.Score,
			Rationale:          cand.Rationale,
		}
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleListMatches(c echo.Context) error {
	limit, offset, err := page(c)
	if err != nil {
		return err
	}

	items, total, err := s.ports.Match.History(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}

	resp := MatchHistoryResponse{
		Matches: make([]MatchHistoryItemResponse, len(items)),
		Total:   total,
	}
	for i, m := range items {
		resp.Matches[i] = MatchHistoryItemResponse{
			ID:                         m.ID,
			Query:                      m.QueryText,
			CreatedAt:                  m.CreatedAt,
			CandidateCount:             m.CandidateCount,
			SelectedDocumentID:         m.SelectedDocumentID,
			SelectedDocumentName:       m.SelectedDocumentName,
			SelectedRegistrationNumber: m.SelectedRegistrationNumber,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetMatch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	match, err := s.ports.Match.GetMatch(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, matchDetail(match))
}

// handleConfirm records the selected document of a match.
func (s *Server) handleConfirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid confirm request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DocumentID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "document_id must be a positive integer")
	}

	match, err := s.ports.Match.ConfirmMatch(c.Request().Context(), id, req.DocumentID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, matchDetail(match))
}

// handleReport renders the report of a confirmed match. With
// ?format=markdown the report body is returned as-is.
func (s *Server) handleReport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	report, err := s.ports.Report.GenerateReport(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	if c.QueryParam("format") == "markdown" {
		return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Content))
	}
	return c.JSON(http.StatusOK, ReportResponse{
		MatchID:    report.MatchID,
		DocumentID: report.DocumentID,
		Content:    report.Content,
		Location:   report.Location,
		CreatedAt:  report.CreatedAt,
	})
}

func (s *Server) handleAudit(c echo.Context) error {
	var filter domain.AuditFilter
	var err error

	if t := c.QueryParam("type"); t != "" {
		filter.Type = domain.AuditEventType(strings.ToUpper(t))
		if !filter.Type.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown event type "+t)
		}
	}
	if filter.MatchID, err = queryID(c, "match_id"); err != nil {
		return err
	}
	if filter.DocumentID, err = queryID(c, "document_id"); err != nil {
		return err
	}
	if filter.Limit, err = queryInt(c, "limit", 0); err != nil {
		return err
	}

	events, err := s.ports.Audit.List(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	resp := AuditListResponse{Events: make([]AuditEventResponse, len(events))}
	for i, ev := range events {
		resp.Events[i] = AuditEventResponse{
			ID:         ev.ID,
			Type:       string(ev.Type),
			DocumentID: ev.DocumentID,
			MatchID:    ev.MatchID,
			Payload:    ev.Payload,
			CreatedAt:  ev.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
