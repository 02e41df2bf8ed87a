package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

// MatchConfig holds matching settings.
type MatchConfig struct {
	ClientID int64

	// CandidateLimit is the number of candidates per match.
	// Defaults to domain.DefaultCandidateLimit.
	CandidateLimit int
}

// MatchService runs searches, persists matches and records selections.
type MatchService struct {
	config  MatchConfig
	search  driven.SearchEngine
	docs    driven.DocumentStore
	matches driven.MatchStore
	audit   *AuditService
	metrics driven.Metrics
	now     func() time.Time
}

// NewMatchService creates a matching service. metrics may be nil.
func NewMatchService(
	config MatchConfig,
	search driven.SearchEngine,
	docs driven.DocumentStore,
	matches driven.MatchStore,
	audit *AuditService,
	metrics driven.Metrics,
) *MatchService {
	if config.CandidateLimit <= 0 {
		config.CandidateLimit = domain.DefaultCandidateLimit
	}
	return &MatchService{
		config:  config,
		search:  search,
		docs:    docs,
		matches: matches,
		audit:   audit,
		metrics: orNopMetrics(metrics),
		now:     time.Now,
	}
}

// Match ranks documents against query, persists the match with its
// candidate list and records a SEARCH event.
func (s *MatchService) Match(ctx context.Context, query string) (domain.MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.MatchResult{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	logger.Section("Match")
	start := s.now()
	hits, err := s.search.Search(ctx, query, s.config.CandidateLimit, s.config.ClientID)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("search: %w", err)
	}
	s.metrics.SearchObserved(s.now().Sub(start), len(hits))

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.DocumentID)
	}

	docs, err := s.docs.GetByIDs(ctx, s.config.ClientID, ids)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("load candidates: %w", err)
	}
	byID := make(map[int64]*domain.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	candidates := make([]domain.Candidate, 0, len(hits))
	for _, h := range hits {
		doc, ok := byID[h.DocumentID]
		if !ok {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			DocumentID:         doc.ID,
			DocumentName:       doc.Fields.DocumentName,
			DocumentType:       doc.Fields.DocumentType,
			RegistrationNumber: doc.Fields.RegistrationNumber,
			ManufacturerName:   doc.Fields.ManufacturerName,
			Score:              roundScore(h.Score),
			Rationale:          Rationale(query, doc),
		})
	}

	match := &domain.Match{
		ClientID:     s.config.ClientID,
		QueryText:    query,
		CandidateIDs: ids,
		CreatedAt:    s.now().UTC(),
	}
	matchID, err := s.matches.Insert(ctx, match)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("insert match: %w", err)
	}

	if err := s.audit.Record(ctx, domain.AuditSearch, nil, int64Ptr(matchID), map[string]any{
		"query":         query,
		"candidate_ids": ids,
	}); err != nil {
		return domain.MatchResult{}, err
	}

	logger.Debug("Match %d: %d candidates for %q", matchID, len(candidates), query)
	return domain.MatchResult{MatchID: matchID, QueryText: query, Candidates: candidates}, nil
}

// ConfirmMatch records documentID as the selection for a match and records
// a SELECT event. A repeated confirmation overwrites the selection.
// Selecting a document outside the candidate list is allowed; it is logged
// and flagged with in_candidates=false in the event payload.
func (s *MatchService) ConfirmMatch(ctx context.Context, matchID, documentID int64) (*domain.Match, error) {
	match, err := s.matches.Get(ctx, s.config.ClientID, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	if _, err := s.docs.Get(ctx, s.config.ClientID, documentID); err != nil {
		return nil, fmt.Errorf("get document %d: %w", documentID, err)
	}

	inCandidates := match.HasCandidate(documentID)
	if !inCandidates {
		logger.Warn("Match %d: selected document %d is not among candidates %v", matchID, documentID, match.CandidateIDs)
	}

	now := s.now().UTC()
	if err := s.matches.SetSelection(ctx, s.config.ClientID, matchID, documentID, now); err != nil {
		return nil, fmt.Errorf("set selection: %w", err)
	}

	if err := s.audit.Record(ctx, domain.AuditSelect, int64Ptr(documentID), int64Ptr(matchID), map[string]any{
		"selected_document_id": documentID,
		"candidate_ids":        match.CandidateIDs,
		"in_candidates":        inCandidates,
	}); err != nil {
		return nil, err
	}
	s.metrics.SelectionRecorded()

	match.SelectedDocumentID = int64Ptr(documentID)
	match.SelectedAt = &now
	return match, nil
}

// GetMatch retrieves a match.
func (s *MatchService) GetMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	match, err := s.matches.Get(ctx, s.config.ClientID, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	return match, nil
}

// History returns a page of past matches with their selected documents resolved.
func (s *MatchService) History(ctx context.Context, limit, offset int) ([]domain.MatchHistoryItem, int, error) {
	if err := validatePage(limit, offset); err != nil {
		return nil, 0, err
	}

	matches, total, err := s.matches.List(ctx, s.config.ClientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}

	var selected []int64
	for _, m := range matches {
		if m.SelectedDocumentID != nil {
			selected = append(selected, *m.SelectedDocumentID)
		}
	}
	docs, err := s.docs.GetByIDs(ctx, s.config.ClientID, selected)
	if err != nil {
		return nil, 0, fmt.Errorf("load selected documents: %w", err)
	}
	byID := make(map[int64]*domain.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	items := make([]domain.MatchHistoryItem, 0, len(matches))
	for _, m := range matches {
		item := domain.MatchHistoryItem{
			ID:                 m.ID,
			QueryText:          m.QueryText,
			CreatedAt:          m.CreatedAt,
			CandidateCount:     len(m.CandidateIDs),
			SelectedDocumentID: m.SelectedDocumentID,
		}
		if m.SelectedDocumentID != nil {
			if doc, ok := byID[*m.SelectedDocumentID]; ok {
				item.SelectedDocumentName = doc.Fields.DocumentName
				item.SelectedRegistrationNumber = doc.Fields.RegistrationNumber
			}
		}
		items = append(items, item)
	}
	return items, total, nil
}

// roundScore rounds to four decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// MaxPageSize bounds list requests.
const MaxPageSize = 500

func validatePage(limit, offset int) error {
	if limit <= 0 || limit > MaxPageSize {
		return fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxPageSize)
	}
	if offset < 0 {
		return fmt.Errorf("%w: negative offset", domain.ErrInvalidInput)
	}
	return nil
}
