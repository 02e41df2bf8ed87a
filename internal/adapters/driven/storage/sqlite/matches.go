package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// ==================== Match Store ====================

// matchStore implements driven.MatchStore.
type matchStore struct {
	store *Store
}

var _ driven.MatchStore = (*matchStore)(nil)

const matchColumns = `id, client_id, query_text, candidate_document_ids_json,
	selected_document_id, created_at, selected_at`

// Insert stores a new match. The candidate list is frozen from here on.
func (s *matchStore) Insert(ctx context.Context, m *domain.Match) (int64, error) {
	if m == nil {
		return 0, domain.ErrInvalidInput
	}

	ids := m.CandidateIDs
	if ids == nil {
		ids = []int64{}
	}
	candidatesJSON, err := json.Marshal(ids)
	if err != nil {
		return 0, fmt.Errorf("marshalling candidate ids: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO matches (client_id, query_text, candidate_document_ids_json, selected_document_id, created_at, selected_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ClientID, m.QueryText, string(candidatesJSON), nullInt64(m.SelectedDocumentID),
		formatTime(m.CreatedAt), selectedAt(m.SelectedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading match id: %w", err)
	}
	return id, nil
}

// Get retrieves a match by ID.
func (s *matchStore) Get(ctx context.Context, clientID, id int64) (*domain.Match, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE client_id = ? AND id = ?`, clientID, id)

	m, err := scanMatchInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SetSelection records the selected document. Only the selection columns
// are written.
func (s *matchStore) SetSelection(ctx context.Context, clientID, matchID, documentID int64, at time.Time) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE matches SET selected_document_id = ?, selected_at = ?
		WHERE client_id = ? AND id = ?
	`, documentID, formatTime(at), clientID, matchID)
	if err != nil {
		return fmt.Errorf("updating match selection: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns a page of matches, newest first, and the total count.
func (s *matchStore) List(ctx context.Context, clientID int64, limit, offset int) ([]domain.Match, int, error) {
	var total int
	if err := s.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE client_id = ?`, clientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting matches: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE client_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.Match{} //nolint:prealloc // size unknown from query
	for rows.Next() {
		m, err := scanMatchInto(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating matches: %w", err)
	}

	return matches, total, nil
}

func scanMatchInto(sc scanner) (*domain.Match, error) {
	var m domain.Match
	var candidatesJSON, createdAt string
	var selected sql.NullInt64
	var selectedAtStr sql.NullString

	if err := sc.Scan(&m.ID, &m.ClientID, &m.QueryText, &candidatesJSON,
		&selected, &createdAt, &selectedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning match: %w", err)
	}

	if err := json.Unmarshal([]byte(candidatesJSON), &m.CandidateIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling candidate ids of match %d: %w", m.ID, err)
	}
	m.SelectedDocumentID = int64PtrFromNull(selected)
	m.CreatedAt = parseTime(createdAt)
	if t := parseNullableTime(selectedAtStr); !t.IsZero() {
		m.SelectedAt = &t
	}
	return &m, nil
}

func selectedAt(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatNullableTime(*t)
}
