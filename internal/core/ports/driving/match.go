package driving

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// MatchService ranks documents against free text and records selections.
type MatchService interface {
	// Match searches for candidates and persists the match.
	Match(ctx context.Context, query string) (domain.MatchResult, error)

	// ConfirmMatch records the selected document for a match.
	ConfirmMatch(ctx context.Context, matchID, documentID int64) (*domain.Match, error)

	// GetMatch retrieves a match by ID.
	GetMatch(ctx context.Context, matchID int64) (*domain.Match, error)

	// History returns a page of past matches, newest first, and the total count.
	History(ctx context.Context, limit, offset int) ([]domain.MatchHistoryItem, int, error)
}
