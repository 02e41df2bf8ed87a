package driven

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// RuleStore reads the extraction rule table.
type RuleStore interface {
	// ListRules returns a client's rules ordered by field, priority and ID.
	ListRules(ctx context.Context, clientID int64) ([]domain.ExtractionRule, error)
}

// RuleWriter adds rows to the extraction rule table.
type RuleWriter interface {
	// SaveRule stores a rule and returns its ID.
	SaveRule(ctx context.Context, rule domain.ExtractionRule) (int64, error)
}
