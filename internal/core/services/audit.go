package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// AuditService appends to and reads the audit trail.
type AuditService struct {
	store driven.AuditStore
	now   func() time.Time
}

// NewAuditService creates an audit service over the given store.
func NewAuditService(store driven.AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

// Record appends an event. documentID and matchID may be nil.
func (s *AuditService) Record(
	ctx context.Context,
	typ domain.AuditEventType,
	documentID, matchID *int64,
	payload map[string]any,
) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: audit event type %q", domain.ErrInvalidInput, typ)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	event := &domain.AuditEvent{
		Type:       typ,
		DocumentID: documentID,
		MatchID:    matchID,
		Payload:    payload,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.store.Append(ctx, event); err != nil {
		return fmt.Errorf("append %s audit event: %w", typ, err)
	}
	return nil
}

// List returns events matching the filter in insertion order.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: audit event type %q", domain.ErrInvalidInput, filter.Type)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}
	return s.store.List(ctx, filter)
}

func int64Ptr(v int64) *int64 {
	return &v
}
