package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// defaultListLimit is the page size of list_documents when none is given.
const defaultListLimit = 20

// MatchInput is the input schema for the match_documents tool.
type MatchInput struct {
	Query string `json:"query" jsonschema:"free-text description of the device to match"`
}

// MatchOutput is the output schema for the match_documents tool.
type MatchOutput struct {
	MatchID    int64             `json:"match_id"`
	Query      string            `json:"query"`
	Candidates []CandidateOutput `json:"candidates"`
}

// CandidateOutput is one ranked candidate document.
type CandidateOutput struct {
	DocumentID         int64   `json:"document_id"`
	DocumentName       string  `json:"document_name"`
	DocumentType       string  `json:"document_type"`
	RegistrationNumber string  `json:"registration_number"`
	ManufacturerName   string  `json:"manufacturer_name"`
	Score              float64 `json:"score"`
	Rationale          string  `json:"rationale"`
}

// ConfirmInput is the input schema for the confirm_match tool.
type ConfirmInput struct {
	MatchID    int64 `json:"match_id" jsonschema:"id returned by match_documents"`
	DocumentID int64 `json:"document_id" jsonschema:"id of the selected document"`
}

// ConfirmOutput is the output schema for the confirm_match tool.
type ConfirmOutput struct {
	MatchID            int64   `json:"match_id"`
	SelectedDocumentID int64   `json:"selected_document_id"`
	CandidateIDs       []int64 `json:"candidate_ids"`
	InCandidates       bool    `json:"in_candidates"`
}

// ReportInput is the input schema for the generate_report tool.
type ReportInput struct {
	MatchID int64 `json:"match_id" jsonschema:"id of a confirmed match"`
}

// ReportOutput is the output schema for the generate_report tool.
type ReportOutput struct {
	MatchID    int64  `json:"match_id"`
	DocumentID int64  `json:"document_id"`
	Content    string `json:"content"`
	Location   string `json:"location,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of documents to skip"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Total     int              `json:"total"`
}

// DocumentOutput is the list projection of a document.
type DocumentOutput struct {
	ID                 int64  `json:"id"`
	FilePath           string `json:"file_path"`
	Version            int    `json:"version"`
	DocumentName       string `json:"document_name"`
	RegistrationNumber string `json:"registration_number"`
	ManufacturerName   string `json:"manufacturer_name"`
	ClassificationCode string `json:"classification_code"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match_documents",
		Description: "Rank ingested regulatory documents against a device description",
	}, s.handleMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "confirm_match",
		Description: "Record the selected document for a match",
	}, s.handleConfirm)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Render the report for a confirmed match",
	}, s.handleReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the current version of each ingested document",
	}, s.handleListDocuments)
}

func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	result, err := s.ports.Match.Match(ctx, input.Query)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	output := MatchOutput{
		MatchID:    result.MatchID,
		Query:      result.QueryText,
		Candidates: make([]CandidateOutput, len(result.Candidates)),
	}
	for i, c := range result.Candidates {
		output.Candidates[i] = CandidateOutput{
			DocumentID:         c.DocumentID,
			DocumentName:       c.DocumentName,
			DocumentType:       c.DocumentType,
			RegistrationNumber: c.RegistrationNumber,
			ManufacturerName:   c.ManufacturerName,
			Score:              c.Score,
			Rationale:          c.Rationale,
		}
	}
	return nil, output, nil
}

func (s *Server) handleConfirm(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConfirmInput,
) (*mcp.CallToolResult, ConfirmOutput, error) {
	match, err := s.ports.Match.ConfirmMatch(ctx, input.MatchID, input.DocumentID)
	if err != nil {
		return nil, ConfirmOutput{}, err
	}
	return nil, ConfirmOutput{
		MatchID:            match.ID,
		SelectedDocumentID: input.DocumentID,
		CandidateIDs:       match.CandidateIDs,
		InCandidates:       match.HasCandidate(input.DocumentID),
	}, nil
}

func (s *Server) handleReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.ports.Report.GenerateReport(ctx, input.MatchID)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, ReportOutput{
		MatchID:    report.MatchID,
		DocumentID: report.DocumentID,
		Content:    report.Content,
		Location:   report.Location,
	}, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	docs, total, err := s.ports.Document.List(ctx, limit, input.Offset)
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Total:     total,
	}
	for i := range docs {
		output.Documents[i] = documentOutput(docs[i])
	}
	return nil, output, nil
}

func documentOutput(d domain.DocumentSummary) DocumentOutput {
	return DocumentOutput{
		ID:                 d.ID,
		FilePath:           d.FilePath,
		Version:            d.Version,
		DocumentName:       d.DocumentName,
		RegistrationNumber: d.RegistrationNumber,
		ManufacturerName:   d.ManufacturerName,
		ClassificationCode: d.ClassificationCode,
	}
}
