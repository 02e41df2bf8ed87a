package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, client_id, file_path, version,
	document_name, document_type, registration_number, regulation_number, regulation_name,
	classification_code, manufacturer_name, manufacturer_address, product_codes, indications_for_use,
	full_text, created_at, updated_at`

// GetPointer returns the pointer for a path, or nil if it has never been ingested.
func (s *documentStore) GetPointer(ctx context.Context, clientID int64, filePath string) (*domain.FilePointer, error) {
	var ptr domain.FilePointer
	var lastModified int64

	err := s.store.db.QueryRowContext(ctx, `
		SELECT client_id, file_path, last_modified, document_id, version
		FROM pdf_files WHERE client_id = ? AND file_path = ?
	`, clientID, filePath).Scan(&ptr.ClientID, &ptr.FilePath, &lastModified, &ptr.DocumentID, &ptr.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying file pointer: %w", err)
	}

	ptr.LastModified = time.Unix(0, lastModified).UTC()
	return &ptr, nil
}

// InsertVersion appends a document version and returns its ID.
func (s *documentStore) InsertVersion(ctx context.Context, doc *domain.Document) (int64, error) {
	if doc == nil {
		return 0, domain.ErrInvalidInput
	}

	f := doc.Fields
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (client_id, file_path, version,
			document_name, document_type, registration_number, regulation_number, regulation_name,
			classification_code, manufacturer_name, manufacturer_address, product_codes, indications_for_use,
			full_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ClientID, doc.FilePath, doc.Version,
		f.DocumentName, f.DocumentType, f.RegistrationNumber, f.RegulationNumber, f.RegulationName,
		f.ClassificationCode, f.ManufacturerName, f.ManufacturerAddress, f.ProductCodes, f.IndicationsForUse,
		doc.FullText, formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting document %s v%d: %w", doc.FilePath, doc.Version, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	return id, nil
}

// LatestVersion returns the highest stored version for a path, or 0.
func (s *documentStore) LatestVersion(ctx context.Context, clientID int64, filePath string) (int, error) {
	var version int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM documents WHERE client_id = ? AND file_path = ?
	`, clientID, filePath).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying latest version: %w", err)
	}
	return version, nil
}

// UpsertPointer creates or moves the pointer for (ClientID, FilePath).
func (s *documentStore) UpsertPointer(ctx context.Context, ptr domain.FilePointer) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pdf_files (client_id, file_path, last_modified, document_id, version)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id, file_path) DO UPDATE SET
			last_modified = excluded.last_modified,
			document_id = excluded.document_id,
			version = excluded.version
	`, ptr.ClientID, ptr.FilePath, ptr.LastModified.UnixNano(), ptr.DocumentID, ptr.Version)
	if err != nil {
		return fmt.Errorf("upserting file pointer: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, clientID, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE client_id = ? AND id = ?`, clientID, id)
	return scanDocument(row)
}

// GetByIDs retrieves documents in the order of ids, skipping unknown ones.
func (s *documentStore) GetByIDs(ctx context.Context, clientID int64, ids []int64) ([]domain.Document, error) {
	if len(ids) == 0 {
		return []domain.Document{}, nil
	}

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, clientID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE client_id = ? AND id IN (`+placeholders(len(ids))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.Document, len(ids))
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		byID[doc.ID] = *doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(byID))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// List returns a page of documents ordered by ID and the total count.
func (s *documentStore) List(ctx context.Context, clientID int64, limit, offset int) ([]domain.DocumentSummary, int, error) {
	var total int
	if err := s.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE client_id = ?`, clientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting documents: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, file_path, version, document_name, registration_number, manufacturer_name, classification_code
		FROM documents
		WHERE client_id = ?
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	items := []domain.DocumentSummary{} //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.DocumentSummary
		if err := rows.Scan(&d.ID, &d.FilePath, &d.Version, &d.DocumentName,
			&d.RegistrationNumber, &d.ManufacturerName, &d.ClassificationCode); err != nil {
			return nil, 0, fmt.Errorf("scanning document summary: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating documents: %w", err)
	}

	return items, total, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocumentInto(sc scanner) (*domain.Document, error) {
	var doc domain.Document
	var createdAt, updatedAt string
	f := &doc.Fields

	err := sc.Scan(&doc.ID, &doc.ClientID, &doc.FilePath, &doc.Version,
		&f.DocumentName, &f.DocumentType, &f.RegistrationNumber, &f.RegulationNumber, &f.RegulationName,
		&f.ClassificationCode, &f.ManufacturerName, &f.ManufacturerAddress, &f.ProductCodes, &f.IndicationsForUse,
		&doc.FullText, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	doc.CreatedAt = parseTime(createdAt)
	doc.UpdatedAt = parseTime(updatedAt)
	return &doc, nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	doc, err := scanDocumentInto(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}
