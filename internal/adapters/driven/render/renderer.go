// Package render renders reports with text/template and the sprig
// function library.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/custodia-labs/docmatch/internal/core/domain"
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// templateExt is appended to a template ID to find its file.
const templateExt = ".tmpl"

//go:embed templates/*.tmpl
var builtin embed.FS

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

// Renderer renders report templates. Templates in an optional directory
// override the built-in ones by file name.
type Renderer struct {
	tmpl *template.Template
}

// New parses the built-in templates and, if dir is not empty, every
// *.tmpl file in dir.
func New(dir string) (*Renderer, error) {
	tmpl, err := template.New("reports").Funcs(sprig.TxtFuncMap()).ParseFS(builtin, "templates/*"+templateExt)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in templates: %w", err)
	}

	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+templateExt))
		if err != nil {
			return nil, fmt.Errorf("listing templates in %s: %w", dir, err)
		}
		for _, path := range matches {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading template %s: %w", path, err)
			}
			if _, err := tmpl.New(filepath.Base(path)).Parse(string(content)); err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", path, err)
			}
		}
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template for templateID.
func (r *Renderer) Render(_ context.Context, templateID string, data domain.ReportData) (string, error) {
	name := templateID + templateExt
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q: %w", templateID, domain.ErrNotFound)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", templateID, err)
	}
	return buf.String(), nil
}

// Templates returns the available template IDs.
func (r *Renderer) Templates() []string {
	var ids []string
	for _, t := range r.tmpl.Templates() {
		if strings.HasSuffix(t.Name(), templateExt) {
			ids = append(ids, strings.TrimSuffix(t.Name(), templateExt))
		}
	}
	return ids
}
