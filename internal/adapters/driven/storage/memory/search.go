package memory

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure SearchEngine implements the interface.
var _ driven.SearchEngine = (*SearchEngine)(nil)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// SearchEngine ranks the current document versions by the number of
// distinct query terms they contain.
type SearchEngine struct {
	docs *DocumentStore
}

// NewSearchEngine creates a search engine over docs.
func NewSearchEngine(docs *DocumentStore) *SearchEngine {
	return &SearchEngine{docs: docs}
}

// Search returns up to limit hits with score overlap/(1+overlap).
func (e *SearchEngine) Search(_ context.Context, query string, limit int, clientID int64) ([]domain.SearchHit, error) {
	terms := words(query)
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	var hits []domain.SearchHit
	for _, doc := range e.docs.Current(clientID) {
		text := words(strings.Join([]string{
			doc.Fields.DocumentName,
			doc.Fields.ManufacturerName,
			doc.Fields.ProductCodes,
			doc.Fields.IndicationsForUse,
			doc.FullText,
		}, " "))
		overlap := 0
		for t := range terms {
			if _, ok := text[t]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		raw := 1 / float64(overlap)
		hits = append(hits, domain.SearchHit{DocumentID: doc.ID, Score: 1 / (1 + raw)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func words(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}
