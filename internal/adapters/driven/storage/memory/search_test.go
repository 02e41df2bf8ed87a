package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

func addCurrent(t *testing.T, store *DocumentStore, path, text string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := store.InsertVersion(ctx, &domain.Document{ClientID: 1, FilePath: path, Version: 1, FullText: text})
	require.NoError(t, err)
	require.NoError(t, store.UpsertPointer(ctx, domain.FilePointer{ClientID: 1, FilePath: path, DocumentID: id, Version: 1}))
	return id
}

func TestSearchEngine_Ranking(t *testing.T) {
	docs := NewDocumentStore()
	a := addCurrent(t, docs, "/d/a.pdf", "blood oxygenator")
	b := addCurrent(t, docs, "/d/b.pdf", "blood oxygenator with arterial filter")
	addCurrent(t, docs, "/d/c.pdf", "infusion pump")

	engine := NewSearchEngine(docs)
	hits, err := engine.Search(context.Background(), "oxygenator arterial filter", 5, 1)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, b, hits[0].DocumentID)
	assert.Equal(t, a, hits[1].DocumentID)
	assert.InDelta(t, 0.75, hits[0].Score, 1e-9)
	assert.InDelta(t, 0.5, hits[1].Score, 1e-9)
}

func TestSearchEngine_LimitAndEmpty(t *testing.T) {
	docs := NewDocumentStore()
	first := addCurrent(t, docs, "/d/a.pdf", "pump")
	addCurrent(t, docs, "/d/b.pdf", "pump")

	engine := NewSearchEngine(docs)
	hits, err := engine.Search(context.Background(), "pump", 1, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, first, hits[0].DocumentID)

	hits, err = engine.Search(context.Background(), "  ", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
