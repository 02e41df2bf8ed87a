// Package dehyphenate rejoins words that pdftotext split across lines.
package dehyphenate

import (
	"context"
	"regexp"
)

// Name is the processor name used in configuration.
const Name = "dehyphenate"

// A letter, a hyphen at the end of the line and a lowercase continuation.
var brokenWord = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{Ll})`)

// Processor joins "extra-\ncorporeal" into "extracorporeal". Hyphens
// followed by an uppercase letter or a digit are kept, so "Class-\nII"
// and product codes are left alone.
type Processor struct{}

// New creates a dehyphenation processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process rejoins hyphenated line breaks.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	return brokenWord.ReplaceAllString(text, "${1}${2}"), nil
}
