package mcp

import (
	"errors"

	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Match runs searches and records selections.
	Match driving.MatchService

	// Report renders reports for confirmed matches.
	Report driving.ReportService

	// Document lists and retrieves ingested documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	var errs []error
	if p.Match == nil {
		errs = append(errs, ErrMissingMatchService)
	}
	if p.Report == nil {
		errs = append(errs, ErrMissingReportService)
	}
	if p.Document == nil {
		errs = append(errs, ErrMissingDocumentService)
	}
	return errors.Join(errs...)
}
