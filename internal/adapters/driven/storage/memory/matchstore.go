package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure MatchStore implements the interface.
var _ driven.MatchStore = (*MatchStore)(nil)

// MatchStore is an in-memory implementation of driven.MatchStore.
type MatchStore struct {
	mu      sync.RWMutex
	nextID  int64
	matches map[int64]domain.Match
}

// NewMatchStore creates a new in-memory match store.
func NewMatchStore() *MatchStore {
	return &MatchStore{matches: make(map[int64]domain.Match)}
}

// Insert stores a new match.
func (s *MatchStore) Insert(_ context.Context, m *domain.Match) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := cloneMatch(*m)
	stored.ID = s.nextID
	stored.SelectedDocumentID = nil
	stored.SelectedAt = nil
	s.matches[stored.ID] = stored
	return stored.ID, nil
}

// Get retrieves a match by ID.
func (s *MatchStore) Get(_ context.Context, clientID, id int64) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok || m.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	out := cloneMatch(m)
	return &out, nil
}

// SetSelection records the selected document.
func (s *MatchStore) SetSelection(_ context.Context, clientID, matchID, documentID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok || m.ClientID != clientID {
		return domain.ErrNotFound
	}
	m.SelectedDocumentID = &documentID
	m.SelectedAt = &at
	s.matches[matchID] = m
	return nil
}

// List returns a page of matches, newest first.
func (s *MatchStore) List(_ context.Context, clientID int64, limit, offset int) ([]domain.Match, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if m.ClientID == clientID {
			all = append(all, cloneMatch(m))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	if offset >= total {
		return []domain.Match{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func cloneMatch(m domain.Match) domain.Match {
	ids := make([]int64, len(m.CandidateIDs))
	copy(ids, m.CandidateIDs)
	m.CandidateIDs = ids
	if m.SelectedDocumentID != nil {
		v := *m.SelectedDocumentID
		m.SelectedDocumentID = &v
	}
	if m.SelectedAt != nil {
		v := *m.SelectedAt
		m.SelectedAt = &v
	}
	return m
}
