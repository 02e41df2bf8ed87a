package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

type pointerKey struct {
	clientID int64
	path     string
}

type versionKey struct {
	clientID int64
	path     string
	version  int
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	nextID    int64
	documents map[int64]domain.Document
	versions  map[versionKey]int64
	pointers  map[pointerKey]domain.FilePointer

	// InsertErr, when set, is returned by InsertVersion.
	InsertErr error
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
		versions:  make(map[versionKey]int64),
		pointers:  make(map[pointerKey]domain.FilePointer),
	}
}

// GetPointer returns the pointer for a path, or nil if there is none.
func (s *DocumentStore) GetPointer(_ context.Context, clientID int64, filePath string) (*domain.FilePointer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ptr, ok := s.pointers[pointerKey{clientID, filePath}]
	if !ok {
		return nil, nil
	}
	return &ptr, nil
}

// InsertVersion appends a document version.
func (s *DocumentStore) InsertVersion(_ context.Context, doc *domain.Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return 0, s.InsertErr
	}
	key := versionKey{doc.ClientID, doc.FilePath, doc.Version}
	if _, exists := s.versions[key]; exists {
		return 0, fmt.Errorf("version %d of %s already exists", doc.Version, doc.FilePath)
	}
	s.nextID++
	stored := *doc
	stored.ID = s.nextID
	s.documents[stored.ID] = stored
	s.versions[key] = stored.ID
	return stored.ID, nil
}

// LatestVersion returns the highest stored version for a path, or 0.
func (s *DocumentStore) LatestVersion(_ context.Context, clientID int64, filePath string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := 0
	for key := range s.versions {
		if key.clientID == clientID && key.path == filePath && key.version > latest {
			latest = key.version
		}
	}
	return latest, nil
}

// UpsertPointer creates or replaces a file pointer.
func (s *DocumentStore) UpsertPointer(_ context.Context, ptr domain.FilePointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointers[pointerKey{ptr.ClientID, ptr.FilePath}] = ptr
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, clientID, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok || doc.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByIDs retrieves documents in the order of ids, skipping unknown ones.
func (s *DocumentStore) GetByIDs(_ context.Context, clientID int64, ids []int64) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.documents[id]; ok && doc.ClientID == clientID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// List returns a page of documents ordered by ID and the total count.
func (s *DocumentStore) List(_ context.Context, clientID int64, limit, offset int) ([]domain.DocumentSummary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedLocked(clientID)
	total := len(all)
	if offset >= total {
		return []domain.DocumentSummary{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]domain.DocumentSummary, 0, end-offset)
	for _, doc := range all[offset:end] {
		items = append(items, domain.DocumentSummary{
			ID:                 doc.ID,
			FilePath:           doc.FilePath,
			Version:            doc.Version,
			DocumentName:       doc.Fields.DocumentName,
			RegistrationNumber: doc.Fields.RegistrationNumber,
			ManufacturerName:   doc.Fields.ManufacturerName,
			ClassificationCode: doc.Fields.ClassificationCode,
		})
	}
	return items, total, nil
}

// Current returns the documents referenced by a client's file pointers,
// ordered by ID.
func (s *DocumentStore) Current(clientID int64) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.Document
	for key, ptr := range s.pointers {
		if key.clientID != clientID {
			continue
		}
		if doc, ok := s.documents[ptr.DocumentID]; ok {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

// Count returns the number of stored document versions.
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func (s *DocumentStore) sortedLocked(clientID int64) []domain.Document {
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if doc.ClientID == clientID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}
