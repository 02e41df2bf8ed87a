package memory

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure FileSource implements the interface.
var _ driven.FileSource = (*FileSource)(nil)

// FileSource is an in-memory driven.FileSource. Tests add files with Put
// and deliver watch events with Emit.
type FileSource struct {
	mu      sync.RWMutex
	files   map[string]domain.FileInfo
	events  chan domain.FileEvent
	closed  bool
	ListErr error
}

// NewFileSource creates an empty file source.
func NewFileSource() *FileSource {
	return &FileSource{
		files:  make(map[string]domain.FileInfo),
		events: make(chan domain.FileEvent, 64),
	}
}

// Put adds or replaces a file.
func (s *FileSource) Put(path string, modTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = domain.FileInfo{Path: path, ModTime: modTime}
}

// Emit delivers an event to the watch channel.
func (s *FileSource) Emit(ev domain.FileEvent) {
	s.events <- ev
}

// Stat returns a stored file.
func (s *FileSource) Stat(_ context.Context, path string) (domain.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.files[path]
	if !ok {
		return domain.FileInfo{}, fs.ErrNotExist
	}
	return info, nil
}

// List returns stored files under root in path order.
func (s *FileSource) List(_ context.Context, root string) ([]domain.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	prefix := filepath.Clean(root) + string(filepath.Separator)
	var out []domain.FileInfo
	for path, info := range s.files {
		if strings.HasPrefix(path, prefix) {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Watch returns a channel fed by Emit. It closes when ctx is cancelled.
func (s *FileSource) Watch(ctx context.Context, _ string) (<-chan domain.FileEvent, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, errors.New("file source closed")
	}

	out := make(chan domain.FileEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-s.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close marks the source closed.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
