package postprocessors

import (
	"context"

	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor runs a pipeline over the output of another TextExtractor.
type Extractor struct {
	inner    driven.TextExtractor
	pipeline *Pipeline
}

// Wrap returns an extractor that post-processes inner's text with p.
func Wrap(inner driven.TextExtractor, p *Pipeline) *Extractor {
	return &Extractor{inner: inner, pipeline: p}
}

// ExtractText extracts text from path and runs the pipeline over it.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	text, err := e.inner.ExtractText(ctx, path)
	if err != nil {
		return "", err
	}
	return e.pipeline.Process(ctx, text)
}
