package driven

import "context"

// PostProcessor transforms extracted PDF text before field extraction.
type PostProcessor interface {
	// Name identifies the processor in configuration and errors.
	Name() string

	// Process returns the transformed text.
	Process(ctx context.Context, text string) (string, error)
}
