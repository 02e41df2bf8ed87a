package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docmatch/internal/core/domain"
)

func startWatcher(t *testing.T, cfg WatcherConfig, ingest *mockIngestService) (*Watcher, *memory.FileSource) {
	t.Helper()
	files := memory.NewFileSource()
	w := NewWatcher(cfg, files, ingest)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, w.Stop(ctx))
	})
	return w, files
}

func TestWatcher_IngestsCreatedAndModifiedPDFs(t *testing.T) {
	ingest := &mockIngestService{}
	_, files := startWatcher(t, WatcherConfig{Root: "/pdfs"}, ingest)

	files.Emit(domain.FileEvent{Path: "/pdfs/a.pdf", Kind: domain.FileCreated})
	files.Emit(domain.FileEvent{Path: "/pdfs/b.pdf", Kind: domain.FileModified})

	assert.Eventually(t, func() bool {
		return len(ingest.ingested()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"/pdfs/a.pdf", "/pdfs/b.pdf"}, ingest.ingested())
}

func TestWatcher_IgnoresIrrelevantEvents(t *testing.T) {
	ingest := &mockIngestService{}
	_, files := startWatcher(t, WatcherConfig{Root: "/pdfs"}, ingest)

	files.Emit(domain.FileEvent{Path: "/pdfs/notes.txt", Kind: domain.FileCreated})
	files.Emit(domain.FileEvent{Path: "/pdfs/dir.pdf", Kind: domain.FileCreated, IsDir: true})
	files.Emit(domain.FileEvent{Path: "/pdfs/gone.pdf", Kind: domain.FileRemoved})
	files.Emit(domain.FileEvent{Path: "/pdfs/real.pdf", Kind: domain.FileCreated})

	assert.Eventually(t, func() bool {
		return len(ingest.ingested()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"/pdfs/real.pdf"}, ingest.ingested())
}

func TestWatcher_Debounce(t *testing.T) {
	ingest := &mockIngestService{}
	_, files := startWatcher(t, WatcherConfig{Root: "/pdfs", Debounce: 50 * time.Millisecond}, ingest)

	for i := 0; i < 5; i++ {
		files.Emit(domain.FileEvent{Path: "/pdfs/a.pdf", Kind: domain.FileModified})
	}

	assert.Eventually(t, func() bool {
		return len(ingest.ingested()) == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	assert.Len(t, ingest.ingested(), 1)
}

func TestWatcher_IngestErrorDoesNotStopWorker(t *testing.T) {
	ingest := &mockIngestService{fileErr: domain.ErrExtraction}
	_, files := startWatcher(t, WatcherConfig{Root: "/pdfs"}, ingest)

	files.Emit(domain.FileEvent{Path: "/pdfs/a.pdf", Kind: domain.FileCreated})
	files.Emit(domain.FileEvent{Path: "/pdfs/b.pdf", Kind: domain.FileCreated})

	assert.Eventually(t, func() bool {
		return len(ingest.ingested()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	files := memory.NewFileSource()
	w := NewWatcher(WatcherConfig{Root: "/pdfs"}, files, &mockIngestService{})

	require.NoError(t, w.Stop(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
	require.NoError(t, w.Stop(ctx))
}

func TestWatcher_StartFailsOnClosedSource(t *testing.T) {
	files := memory.NewFileSource()
	require.NoError(t, files.Close())
	w := NewWatcher(WatcherConfig{Root: "/pdfs"}, files, &mockIngestService{})

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch /pdfs")
}
