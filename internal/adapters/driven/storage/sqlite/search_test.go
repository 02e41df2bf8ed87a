package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCorpus stores five current documents so that terms occurring in one
// or two of them carry a positive inverse document frequency.
func seedCorpus(t *testing.T, s *Store) map[string]int64 {
	t.Helper()
	return map[string]int64{
		"oxygenator": insertCurrent(t, s, 1, "/pdfs/oxy.pdf", 1, "Affinity Oxygenator",
			"Oxygenator with integrated arterial filter for cardiopulmonary bypass."),
		"filter": insertCurrent(t, s, 1, "/pdfs/filter.pdf", 1, "Blood Filter",
			"Filter for removing particulates from blood."),
		"pump": insertCurrent(t, s, 1, "/pdfs/pump.pdf", 1, "Centrifugal Pump",
			"Pump for extracorporeal circulation."),
		"catheter": insertCurrent(t, s, 1, "/pdfs/catheter.pdf", 1, "Venous Catheter",
			"Catheter for venous drainage."),
		"cannula": insertCurrent(t, s, 1, "/pdfs/cannula.pdf", 1, "Aortic Cannula",
			"Cannula for aortic return."),
	}
}

func TestSearchEngine_Ranking(t *testing.T) {
	store := setupMemoryStore(t)
	ids := seedCorpus(t, store)

	hits, err := store.SearchEngine().Search(context.Background(), "arterial filter", 5, 1)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, ids["oxygenator"], hits[0].DocumentID)
	assert.Equal(t, ids["filter"], hits[1].DocumentID)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	for _, h := range hits {
		assert.Greater(t, h.Score, 0.0)
		assert.Less(t, h.Score, 1.0)
	}
}

func TestSearchEngine_Limit(t *testing.T) {
	store := setupMemoryStore(t)
	seedCorpus(t, store)

	hits, err := store.SearchEngine().Search(context.Background(), "for", 2, 1)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = store.SearchEngine().Search(context.Background(), "for", 0, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEngine_TiesBreakByID(t *testing.T) {
	store := setupMemoryStore(t)
	a := insertCurrent(t, store, 1, "/pdfs/a.pdf", 1, "Twin", "identical content")
	b := insertCurrent(t, store, 1, "/pdfs/b.pdf", 1, "Twin", "identical content")

	for i := 0; i < 3; i++ {
		hits, err := store.SearchEngine().Search(context.Background(), "identical", 2, 1)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, a, hits[0].DocumentID)
		assert.Equal(t, b, hits[1].DocumentID)
	}
}

func TestSearchEngine_CurrentVersionsOnly(t *testing.T) {
	store := setupMemoryStore(t)
	seedCorpus(t, store)
	insertCurrent(t, store, 1, "/pdfs/zebra.pdf", 1, "Zebra", "zebra stripes")
	v2 := insertCurrent(t, store, 1, "/pdfs/zebra.pdf", 2, "Zebra", "plain horse")

	hits, err := store.SearchEngine().Search(context.Background(), "stripes", 5, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = store.SearchEngine().Search(context.Background(), "horse", 5, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, v2, hits[0].DocumentID)
}

func TestSearchEngine_ClientPartition(t *testing.T) {
	store := setupMemoryStore(t)
	insertCurrent(t, store, 2, "/pdfs/other.pdf", 1, "Other", "oxygenator")

	hits, err := store.SearchEngine().Search(context.Background(), "oxygenator", 5, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEngine_QuerySyntaxIsInert(t *testing.T) {
	store := setupMemoryStore(t)
	ids := seedCorpus(t, store)

	for _, q := range []string{`pump" OR "`, `NEAR(pump`, `pump*`, `-pump`, `pump AND`, `510(k)`} {
		_, err := store.SearchEngine().Search(context.Background(), q, 5, 1)
		assert.NoError(t, err, q)
	}

	hits, err := store.SearchEngine().Search(context.Background(), `"pump"`, 5, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, ids["pump"], hits[0].DocumentID)

	hits, err = store.SearchEngine().Search(context.Background(), "  ?! ", 5, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFTSQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"Pump", `"pump"`},
		{"device submission", `"device" OR "submission"`},
		{`510(k) "NEAR" pump pump`, `"510" OR "k" OR "near" OR "pump"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ftsQuery(tt.in), tt.in)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, similarity(0))
	assert.InDelta(t, 0.5, similarity(-1), 1e-12)
	assert.InDelta(t, 2.0/3.0, similarity(-2), 1e-12)
	assert.Greater(t, similarity(-3), similarity(-2))
}
