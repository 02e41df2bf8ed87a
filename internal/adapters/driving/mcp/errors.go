// Package mcp provides an MCP (Model Context Protocol) server adapter for docmatch.
// It lets AI assistants match queries against ingested documents, confirm
// selections and generate reports.
package mcp

import "errors"

var (
	// ErrMissingMatchService is returned when the match service is not provided.
	ErrMissingMatchService = errors.New("mcp: match service is required")

	// ErrMissingReportService is returned when the report service is not provided.
	ErrMissingReportService = errors.New("mcp: report service is required")

	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")
)
