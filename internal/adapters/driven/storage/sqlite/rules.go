package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// ==================== Rule Store ====================

// ruleStore implements driven.RuleStore and driven.RuleWriter.
type ruleStore struct {
	store *Store
}

var (
	_ driven.RuleStore  = (*ruleStore)(nil)
	_ driven.RuleWriter = (*ruleStore)(nil)
)

// ListRules returns a client's rules ordered by field, priority and ID.
func (s *ruleStore) ListRules(ctx context.Context, clientID int64) ([]domain.ExtractionRule, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, client_id, field_name, pattern, priority
		FROM extraction_rules
		WHERE client_id = ?
		ORDER BY field_name, priority, id
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying extraction rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.ExtractionRule //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.ExtractionRule
		if err := rows.Scan(&r.ID, &r.ClientID, &r.FieldName, &r.Pattern, &r.Priority); err != nil {
			return nil, fmt.Errorf("scanning extraction rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extraction rules: %w", err)
	}

	return rules, nil
}

// SaveRule adds a rule and returns its ID.
func (s *ruleStore) SaveRule(ctx context.Context, rule domain.ExtractionRule) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO extraction_rules (client_id, field_name, pattern, priority)
		VALUES (?, ?, ?, ?)
	`, rule.ClientID, rule.FieldName, rule.Pattern, rule.Priority)
	if err != nil {
		return 0, fmt.Errorf("inserting extraction rule: %w", err)
	}
	return res.LastInsertId()
}
