package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docmatch resources.
	uriScheme = "docmatch://"

	// historyLimit bounds the matches resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "matches",
		Name:        "matches",
		Description: "Most recent matches with their selected documents",
		MIMEType:    "application/json",
	}, s.handleMatchesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Extracted fields and text excerpt of a document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleMatchesResource returns the match history.
func (s *Server) handleMatchesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	items, _, err := s.ports.Match.History(ctx, historyLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}

	type matchInfo struct {
		ID                         int64     `json:"id"`
		Query                      string    `json:"query"`
		CreatedAt                  time.Time `json:"created_at"`
		CandidateCount             int       `json:"candidate_count"`
		SelectedDocumentID         *int64    `json:"selected_document_id,omitempty"`
		SelectedDocumentName       string    `json:"selected_document_name,omitempty"`
		SelectedRegistrationNumber string    `json:"selected_registration_number,omitempty"`
	}

	infos := make([]matchInfo, len(items))
	for i, m := range items {
		infos[i] = matchInfo{
			ID:                         m.ID,
			Query:                      m.QueryText,
			CreatedAt:                  m.CreatedAt,
			CandidateCount:             m.CandidateCount,
			SelectedDocumentID:         m.SelectedDocumentID,
			SelectedDocumentName:       m.SelectedDocumentName,
			SelectedRegistrationNumber: m.SelectedRegistrationNumber,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleDocumentResource returns one document's fields and excerpt.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	f := doc.Fields
	return jsonResource(req.Params.URI, map[string]any{
		"id":                   doc.ID,
		"file_path":            doc.FilePath,
		"version":              doc.Version,
		"document_name":        f.DocumentName,
		"document_type":        f.DocumentType,
		"registration_number":  f.RegistrationNumber,
		"regulation_number":    f.RegulationNumber,
		"regulation_name":      f.RegulationName,
		"classification_code":  f.ClassificationCode,
		"manufacturer_name":    f.ManufacturerName,
		"manufacturer_address": f.ManufacturerAddress,
		"product_codes":        f.ProductCodes,
		"indications_for_use":  f.IndicationsForUse,
		"full_text_excerpt":    doc.FullTextExcerpt,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like docmatch://documents/{documentId}.
func extractDocumentID(uri string) (int64, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
