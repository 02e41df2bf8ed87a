package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// ==================== Audit Store ====================

// auditStore implements driven.AuditStore.
type auditStore struct {
	store *Store
}

var _ driven.AuditStore = (*auditStore)(nil)

// Append stores an event.
func (s *auditStore) Append(ctx context.Context, event *domain.AuditEvent) (int64, error) {
	if event == nil {
		return 0, domain.ErrInvalidInput
	}

	payload := event.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshalling audit payload: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO audit_events (event_type, document_id, match_id, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(event.Type), nullInt64(event.DocumentID), nullInt64(event.MatchID),
		string(payloadJSON), formatTime(event.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting audit event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading audit event id: %w", err)
	}
	return id, nil
}

// List returns matching events in insertion order. Numbers in payloads
// are returned as json.Number.
func (s *auditStore) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	var where []string
	var args []interface{}

	if filter.Type != "" {
		where = append(where, "event_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.DocumentID != nil {
		where = append(where, "document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.MatchID != nil {
		where = append(where, "match_id = ?")
		args = append(args, *filter.MatchID)
	}

	query := `SELECT id, event_type, document_id, match_id, payload_json, created_at FROM audit_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent //nolint:prealloc // size unknown from query
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}

	return events, nil
}

// scanAuditEvent scans an audit event from *sql.Rows.
func scanAuditEvent(rows *sql.Rows) (*domain.AuditEvent, error) {
	var event domain.AuditEvent
	var eventType, payloadJSON, createdAt string
	var documentID, matchID sql.NullInt64

	if err := rows.Scan(&event.ID, &eventType, &documentID, &matchID, &payloadJSON, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning audit event: %w", err)
	}

	event.Type = domain.AuditEventType(eventType)
	event.DocumentID = int64PtrFromNull(documentID)
	event.MatchID = int64PtrFromNull(matchID)
	event.CreatedAt = parseTime(createdAt)

	dec := json.NewDecoder(bytes.NewReader([]byte(payloadJSON)))
	dec.UseNumber()
	if err := dec.Decode(&event.Payload); err != nil {
		return nil, fmt.Errorf("unmarshalling payload of audit event %d: %w", event.ID, err)
	}
	return &event, nil
}
