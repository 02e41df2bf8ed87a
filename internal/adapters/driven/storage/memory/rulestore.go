package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure RuleStore implements the interfaces.
var (
	_ driven.RuleStore  = (*RuleStore)(nil)
	_ driven.RuleWriter = (*RuleStore)(nil)
)

// RuleStore is an in-memory implementation of driven.RuleStore.
type RuleStore struct {
	mu    sync.RWMutex
	rules []domain.ExtractionRule
}

// NewRuleStore creates a rule store holding rules.
func NewRuleStore(rules ...domain.ExtractionRule) *RuleStore {
	return &RuleStore{rules: rules}
}

// Set replaces the stored rules.
func (s *RuleStore) Set(rules []domain.ExtractionRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = rules
}

// ListRules returns the rules for a client. Rules with a zero ClientID
// apply to every client.
func (s *RuleStore) ListRules(_ context.Context, clientID int64) ([]domain.ExtractionRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ExtractionRule
	for _, r := range s.rules {
		if r.ClientID == 0 || r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

// SaveRule appends a rule, assigning the next ID.
func (s *RuleStore) SaveRule(_ context.Context, rule domain.ExtractionRule) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, r := range s.rules {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rule.ID = maxID + 1
	s.rules = append(s.rules, rule)
	return rule.ID, nil
}
