package sqlite

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// ==================== Search Engine ====================

// searchEngine implements driven.SearchEngine over the documents_fts index.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

var queryTerm = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Search ranks the client's current document versions against query.
// Hits are ordered by bm25 (most relevant first) and then by document ID.
func (e *searchEngine) Search(ctx context.Context, query string, limit int, clientID int64) ([]domain.SearchHit, error) {
	match := ftsQuery(query)
	if match == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := e.store.db.QueryContext(ctx, `
		SELECT d.id, bm25(documents_fts) AS relevance
		FROM documents_fts
		JOIN documents d ON d.id = documents_fts.rowid
		JOIN pdf_files p ON p.document_id = d.id AND p.client_id = d.client_id
		WHERE documents_fts MATCH ? AND d.client_id = ?
		ORDER BY relevance ASC, d.id ASC
		LIMIT ?
	`, match, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search index: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit domain.SearchHit
		var rank float64
		if err := rows.Scan(&hit.DocumentID, &rank); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		hit.Score = similarity(rank)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}

	return hits, nil
}

// ftsQuery turns free text into an FTS5 query that ORs the quoted terms,
// so user input never reaches the FTS5 query syntax.
func ftsQuery(text string) string {
	seen := make(map[string]struct{})
	var terms []string
	for _, t := range queryTerm.FindAllString(strings.ToLower(text), -1) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, `"`+t+`"`)
	}
	return strings.Join(terms, " OR ")
}

// similarity maps a bm25 value onto (0,1), higher is better.
// bm25 is negative and more negative for better matches, so the raw rank
// is taken as 1/|bm25| and the score as 1/(1+rawRank).
func similarity(bm25 float64) float64 {
	b := math.Abs(bm25)
	if b == 0 {
		return 0
	}
	return 1 / (1 + 1/b)
}
