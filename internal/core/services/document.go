package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService provides read access to a client's documents.
type DocumentService struct {
	clientID int64
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(clientID int64, docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{clientID: clientID, docStore: docStore}
}

// List returns a page of documents ordered by ID and the total count.
func (s *DocumentService) List(ctx context.Context, limit, offset int) ([]domain.DocumentSummary, int, error) {
	if err := validatePage(limit, offset); err != nil {
		return nil, 0, err
	}
	return s.docStore.List(ctx, s.clientID, limit, offset)
}

// Get retrieves a document by ID with an excerpt of its text.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.DocumentDetail, error) {
	doc, err := s.docStore.Get(ctx, s.clientID, id)
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return &domain.DocumentDetail{
		Document:        *doc,
		FullTextExcerpt: domain.Excerpt(doc.FullText, domain.ExcerptLength),
	}, nil
}
