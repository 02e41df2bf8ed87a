package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// eventBuffer is the capacity of each watch channel.
const eventBuffer = 64

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("file source is closed")

// Source reads a local directory tree. Hidden files and directories are skipped.
type Source struct {
	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a local file source.
func New() *Source {
	return &Source{}
}

// Stat returns file information for path.
func (s *Source) Stat(_ context.Context, path string) (domain.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileInfo{}, err
	}
	return toFileInfo(path, info), nil
}

// List returns every regular, non-hidden file under root sorted by path.
// A missing root returns no files and no error.
func (s *Source) List(ctx context.Context, root string) ([]domain.FileInfo, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Directory %s does not exist; nothing to scan", root)
		return nil, nil
	}

	var files []domain.FileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, toFileInfo(path, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// Watch subscribes to changes under root. Directories created later are
// watched as they appear. The channel closes when ctx ends or the source
// is closed.
func (s *Source) Watch(ctx context.Context, root string) (<-chan domain.FileEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", root)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(w, root); err != nil {
		w.Close()
		return nil, err
	}
	s.watchers = append(s.watchers, w)

	out := make(chan domain.FileEvent, eventBuffer)
	go s.pump(ctx, w, out)
	return out, nil
}

// Close stops every active watch. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for _, w := range s.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.watchers = nil
	return errors.Join(errs...)
}

func (s *Source) pump(ctx context.Context, w *fsnotify.Watcher, out chan<- domain.FileEvent) {
	defer close(out)
	defer w.Close()

	emit := func(ev domain.FileEvent) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case raw, ok := <-w.Events:
			if !ok {
				return
			}
			ev := translate(raw)
			if ev == nil {
				continue
			}
			if ev.IsDir && ev.Kind == domain.FileCreated {
				// Files may land in a new directory before it is watched.
				if err := addTree(w, ev.Path); err != nil {
					logger.Warn("Failed to watch new directory %s: %v", ev.Path, err)
				}
				for _, f := range existingFiles(ev.Path) {
					if !emit(f) {
						return
					}
				}
			}
			if !emit(*ev) {
				return
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("File watch error: %v", err)
		}
	}
}

// translate maps an fsnotify event to a file event, or nil when the event
// is irrelevant.
func translate(raw fsnotify.Event) *domain.FileEvent {
	if isHidden(raw.Name) {
		return nil
	}

	var kind domain.FileEventKind
	switch {
	case raw.Has(fsnotify.Remove) || raw.Has(fsnotify.Rename):
		return &domain.FileEvent{Path: raw.Name, Kind: domain.FileRemoved}
	case raw.Has(fsnotify.Create):
		kind = domain.FileCreated
	case raw.Has(fsnotify.Write):
		kind = domain.FileModified
	default:
		return nil
	}

	info, err := os.Stat(raw.Name)
	if err != nil {
		// Gone again before we looked.
		return nil
	}
	return &domain.FileEvent{Path: raw.Name, Kind: kind, IsDir: info.IsDir()}
}

// addTree watches dir and every non-hidden directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// existingFiles returns Created events for the regular files under dir.
func existingFiles(dir string) []domain.FileEvent {
	var events []domain.FileEvent
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path != dir && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			events = append(events, domain.FileEvent{Path: path, Kind: domain.FileCreated})
		}
		return nil
	})
	return events
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func toFileInfo(path string, info fs.FileInfo) domain.FileInfo {
	return domain.FileInfo{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		IsDir:   info.IsDir(),
	}
}
