package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure TextExtractor implements the interface.
var _ driven.TextExtractor = (*TextExtractor)(nil)

// TextExtractor returns preset text per path.
type TextExtractor struct {
	mu    sync.RWMutex
	texts map[string]string
	calls map[string]int
}

// NewTextExtractor creates an empty extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{texts: make(map[string]string), calls: make(map[string]int)}
}

// Set assigns the text returned for path.
func (e *TextExtractor) Set(path, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.texts[path] = text
}

// Calls returns how many times path was extracted.
func (e *TextExtractor) Calls(path string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.calls[path]
}

// ExtractText returns the text set for path.
func (e *TextExtractor) ExtractText(_ context.Context, path string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls[path]++
	text, ok := e.texts[path]
	if !ok {
		return "", fmt.Errorf("no text for %s", path)
	}
	return text, nil
}
