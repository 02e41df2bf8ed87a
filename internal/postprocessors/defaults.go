package postprocessors

import (
	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
	"github.com/custodia-labs/docmatch/internal/postprocessors/dehyphenate"
	"github.com/custodia-labs/docmatch/internal/postprocessors/whitespace"
)

// DefaultNames lists the processors run when none are configured.
var DefaultNames = []string{whitespace.Name, dehyphenate.Name}

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(whitespace.Name, buildWhitespace)
	r.Register(dehyphenate.Name, buildDehyphenate)
}

// buildWhitespace creates a whitespace processor from generic config.
// Supported config keys:
//   - max_blank_lines (int): consecutive blank lines kept (default: 1)
func buildWhitespace(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []whitespace.Option
	if _, ok := cfg["max_blank_lines"]; ok {
		opts = append(opts, whitespace.WithMaxBlankLines(getIntFromConfig(cfg, "max_blank_lines")))
	}
	return whitespace.New(opts...), nil
}

func buildDehyphenate(_ map[string]any) (driven.PostProcessor, error) {
	return dehyphenate.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
