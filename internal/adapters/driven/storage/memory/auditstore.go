package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure AuditStore implements the interface.
var _ driven.AuditStore = (*AuditStore)(nil)

// AuditStore is an in-memory implementation of driven.AuditStore.
type AuditStore struct {
	mu     sync.RWMutex
	events []domain.AuditEvent

	// AppendErr, when set, is returned by Append.
	AppendErr error
}

// NewAuditStore creates a new in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Append stores an event.
func (s *AuditStore) Append(_ context.Context, event *domain.AuditEvent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return 0, s.AppendErr
	}
	stored := *event
	stored.ID = int64(len(s.events) + 1)
	s.events = append(s.events, stored)
	return stored.ID, nil
}

// List returns matching events in insertion order.
func (s *AuditStore) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.AuditEvent
	for _, e := range s.events {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.MatchID != nil && (e.MatchID == nil || *e.MatchID != *filter.MatchID) {
			continue
		}
		if filter.DocumentID != nil && (e.DocumentID == nil || *e.DocumentID != *filter.DocumentID) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// Types returns the type of every stored event in order.
func (s *AuditStore) Types() []domain.AuditEventType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]domain.AuditEventType, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.Type)
	}
	return types
}
