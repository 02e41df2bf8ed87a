// Package whitespace normalises line endings and blank space in extracted text.
package whitespace

import (
	"context"
	"strings"
	"unicode"
)

// Name is the processor name used in configuration.
const Name = "whitespace"

// DefaultMaxBlankLines is the number of consecutive blank lines kept.
const DefaultMaxBlankLines = 1

// Processor rewrites CRLF and CR line endings to LF, turns form feeds into
// line breaks, drops other control characters, trims trailing spaces on
// every line and collapses runs of blank lines.
type Processor struct {
	maxBlankLines int
}

// Option configures the whitespace processor.
type Option func(*Processor)

// WithMaxBlankLines sets how many consecutive blank lines are kept.
func WithMaxBlankLines(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.maxBlankLines = n
		}
	}
}

// New creates a whitespace processor.
func New(opts ...Option) *Processor {
	p := &Processor{maxBlankLines: DefaultMaxBlankLines}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process normalises text.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.NewReplacer("\r", "\n", "\f", "\n").Replace(text)
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			blank++
			if blank > p.maxBlankLines {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), nil
}
