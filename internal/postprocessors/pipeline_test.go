package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/docmatch/internal/adapters/driven/storage/memory"
)

// mockProcessor is a test processor that applies fn or fails with err.
type mockProcessor struct {
	name string
	fn   func(string) string
	err  error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.fn != nil {
		return m.fn(text), nil
	}
	return text, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
	if got := p.Names(); len(got) != 1 || got[0] != "test" {
		t.Errorf("expected names [test], got %v", got)
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()

	text, err := p.Process(context.Background(), "unchanged")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "unchanged" {
		t.Errorf("expected text unchanged, got %q", text)
	}
}

func TestPipeline_Process_Order(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "upper", fn: strings.ToUpper},
		&mockProcessor{name: "suffix", fn: func(s string) string { return s + "!" }},
	)

	text, err := p.Process(context.Background(), "k123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "K123456!" {
		t.Errorf("expected %q, got %q", "K123456!", text)
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")

	p := NewPipeline(&mockProcessor{
		name: "failing",
		err:  expectedErr,
	})

	_, err := p.Process(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error from failing processor")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "processor failing") {
		t.Errorf("expected processor name in error, got: %v", err)
	}
}

func TestWrap(t *testing.T) {
	inner := memory.NewTextExtractor()
	inner.Set("/pdfs/a.pdf", "Trade/Device Name: Affinity\r\n\r\n\r\nManufacturer: Medtronic  ")

	r := NewRegistry()
	RegisterDefaults(r)
	p, err := r.BuildPipeline(DefaultNames, nil)
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}

	text, err := Wrap(inner, p).ExtractText(context.Background(), "/pdfs/a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Trade/Device Name: Affinity\n\nManufacturer: Medtronic"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestWrap_InnerError(t *testing.T) {
	_, err := Wrap(memory.NewTextExtractor(), NewPipeline()).ExtractText(context.Background(), "/missing.pdf")
	if err == nil {
		t.Error("expected error from inner extractor")
	}
}
