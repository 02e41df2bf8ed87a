package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.Watcher = (*Watcher)(nil)

// DefaultDebounce is how long a path must be quiet before it is ingested.
const DefaultDebounce = 500 * time.Millisecond

// WatcherConfig holds live watch settings.
type WatcherConfig struct {
	// Root is the directory to watch.
	Root string

	// Debounce coalesces bursts of events for the same path. Zero ingests
	// on every event.
	Debounce time.Duration

	// MaxIngestsPerSecond bounds the ingest rate. Zero means unlimited.
	MaxIngestsPerSecond float64
}

// Watcher ingests PDFs as they are created or modified. A single worker
// goroutine drains the file source's event channel, so ingests triggered
// by the watcher never overlap each other.
type Watcher struct {
	config  WatcherConfig
	files   driven.FileSource
	ingest  driving.IngestService
	limiter *rate.Limiter

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher that feeds ingest from files.
func NewWatcher(config WatcherConfig, files driven.FileSource, ingest driving.IngestService) *Watcher {
	limit := rate.Inf
	if config.MaxIngestsPerSecond > 0 {
		limit = rate.Limit(config.MaxIngestsPerSecond)
	}
	return &Watcher{
		config:  config,
		files:   files,
		ingest:  ingest,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Start subscribes to the root directory and starts the worker.
// It returns once the subscription is established.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	wctx, cancel := context.WithCancel(ctx)
	events, err := w.files.Watch(wctx, w.config.Root)
	if err != nil {
		cancel()
		return fmt.Errorf("watch %s: %w", w.config.Root, err)
	}

	w.running = true
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(withTrigger(wctx, TriggerWatch, ""), events, w.done)

	logger.Info("Watching %s for PDF changes", w.config.Root)
	return nil
}

// Stop cancels the subscription and waits for the worker to exit.
// If ctx ends first, Stop returns its error and the worker finishes
// in the background.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.cancel()
	done := w.done
	w.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for watcher to stop: %w", ctx.Err())
	}
}

func (w *Watcher) run(ctx context.Context, events <-chan domain.FileEvent, done chan struct{}) {
	defer close(done)

	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if w.config.Debounce <= 0 {
				w.handle(ctx, ev.Path)
				continue
			}
			if t, ok := pending[ev.Path]; ok {
				t.Reset(w.config.Debounce)
				continue
			}
			path := ev.Path
			pending[path] = time.AfterFunc(w.config.Debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			w.handle(ctx, path)
		}
	}
}

// relevant reports whether an event should trigger an ingest.
func (w *Watcher) relevant(ev domain.FileEvent) bool {
	if ev.IsDir || !domain.IsPDF(ev.Path) {
		return false
	}
	return ev.Kind == domain.FileCreated || ev.Kind == domain.FileModified
}

func (w *Watcher) handle(ctx context.Context, path string) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	result, err := w.ingest.IngestFile(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("Failed to ingest %s: %v", path, err)
		return
	}
	logger.Debug("Watch ingest %s: %s", path, result.Outcome)
}
