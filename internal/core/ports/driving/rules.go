package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// RuleService manages the extraction rule table.
type RuleService interface {
	// List returns the client's rules ordered by field and priority.
	List(ctx context.Context) ([]domain.ExtractionRule, error)

	// Add validates and stores a rule, then reloads the live rule engine.
	Add(ctx context.Context, rule domain.ExtractionRule) (int64, error)
}
