package driven

import "context"

// TextExtractor converts a PDF file into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
