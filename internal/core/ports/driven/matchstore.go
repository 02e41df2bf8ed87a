package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// MatchStore persists matches. The candidate list is written once on
// insert and never updated.
type MatchStore interface {
	// Insert stores a new match and returns its assigned ID.
	Insert(ctx context.Context, m *domain.Match) (int64, error)

	// Get retrieves a match by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, clientID, id int64) (*domain.Match, error)

	// SetSelection records the selected document for a match.
	// Returns domain.ErrNotFound if the match does not exist.
	SetSelection(ctx context.Context, clientID, matchID, documentID int64, at time.Time) error

	// List returns a page of matches, newest first, and the total count.
	List(ctx context.Context, clientID int64, limit, offset int) ([]domain.Match, int, error)
}
