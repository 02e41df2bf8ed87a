package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

func TestDocumentService_List(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	f.put("/pdfs/a.pdf", "Alpha", "K000001", time.Unix(1000, 0))
	f.put("/pdfs/b.pdf", "Beta", "K000002", time.Unix(1000, 0))
	_, err := f.svc.IngestAll(ctx)
	require.NoError(t, err)

	svc := NewDocumentService(1, f.docs)

	docs, total, err := svc.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, docs, 1)
	assert.Equal(t, "Alpha", docs[0].DocumentName)

	docs, _, err = svc.List(ctx, 10, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Beta", docs[0].DocumentName)

	_, _, err = svc.List(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.List(ctx, MaxPageSize+1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.List(ctx, 10, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_Get(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	f.files.Put("/pdfs/long.pdf", time.Unix(1000, 0))
	f.texts.Set("/pdfs/long.pdf", sampleText("Long", "K000003", "Acme", strings.Repeat("filler ", 200)))
	result, err := f.svc.IngestFile(ctx, "/pdfs/long.pdf")
	require.NoError(t, err)

	svc := NewDocumentService(1, f.docs)
	detail, err := svc.Get(ctx, result.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, "Long", detail.Fields.DocumentName)
	assert.LessOrEqual(t, len([]rune(detail.FullTextExcerpt)), domain.ExcerptLength+3)
	assert.True(t, strings.HasPrefix(detail.FullText, "510(k) Summary"))

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := NewDocumentService(2, f.docs)
	_, err = other.Get(ctx, result.DocumentID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
