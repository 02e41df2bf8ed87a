// Package pdftext extracts text from PDF files with poppler's pdftotext.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// DefaultTool is the pdftotext executable looked up on PATH.
const DefaultTool = "pdftotext"

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPDFToolNotFound, name)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Extractor converts PDF files to plain UTF-8 text.
type Extractor struct {
	tool   string
	runner CommandRunner
}

// New creates an extractor that runs tool (DefaultTool when empty).
func New(tool string) *Extractor {
	if tool == "" {
		tool = DefaultTool
	}
	return &Extractor{tool: tool, runner: execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{tool: DefaultTool, runner: runner}
}

// ExtractText returns the text of the PDF at path, pages in order.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, e.tool, "-enc", "UTF-8", path, "-")
	if err != nil {
		if errors.Is(err, domain.ErrPDFToolNotFound) {
			return "", err
		}
		return "", fmt.Errorf("pdftotext failed on %s: %w", path, err)
	}

	// pdftotext separates pages with form feeds.
	text := strings.ReplaceAll(string(out), "\f", "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s has no extractable text", domain.ErrExtraction, path)
	}
	return text, nil
}

// CheckAvailable reports whether the tool can be found on PATH.
func (e *Extractor) CheckAvailable() error {
	if _, err := exec.LookPath(e.tool); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrPDFToolNotFound, e.tool)
	}
	return nil
}

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return `pdftotext is required to read PDF files. Install poppler:
  macOS:          brew install poppler
  Debian/Ubuntu:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils
  Windows:        choco install poppler`
}
