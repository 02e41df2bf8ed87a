package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure RuleService implements the interface.
var _ driving.RuleService = (*RuleService)(nil)

// ruleReloader swaps a freshly compiled rule table into the ingest pipeline.
type ruleReloader interface {
	ReloadRules(ctx context.Context) error
}

// RuleService manages one client's extraction rules.
type RuleService struct {
	clientID int64
	store    driven.RuleStore
	writer   driven.RuleWriter
	reloader ruleReloader
}

// NewRuleService creates a rule service. reloader may be nil.
func NewRuleService(clientID int64, store driven.RuleStore, writer driven.RuleWriter, reloader ruleReloader) *RuleService {
	return &RuleService{
		clientID: clientID,
		store:    store,
		writer:   writer,
		reloader: reloader,
	}
}

// List returns the client's rules ordered by field and priority.
func (s *RuleService) List(ctx context.Context) ([]domain.ExtractionRule, error) {
	rules, err := s.store.ListRules(ctx, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("list extraction rules: %w", err)
	}
	return rules, nil
}

// Add stores rule for the client after checking that the resulting table
// compiles, then reloads the ingest rule engine. Documents already stored
// are not re-extracted.
func (s *RuleService) Add(ctx context.Context, rule domain.ExtractionRule) (int64, error) {
	rule.ClientID = s.clientID
	rule.FieldName = strings.TrimSpace(rule.FieldName)

	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := CompileRules(append(existing, rule)); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	id, err := s.writer.SaveRule(ctx, rule)
	if err != nil {
		return 0, fmt.Errorf("save extraction rule: %w", err)
	}
	logger.Info("Added extraction rule %d for %s (priority %d)", id, rule.FieldName, rule.Priority)

	if s.reloader != nil {
		if err := s.reloader.ReloadRules(ctx); err != nil {
			return id, err
		}
	}
	return id, nil
}
