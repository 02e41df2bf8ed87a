package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// indicationsWindow is the number of runes captured after the
// indications-for-use anchor.
const indicationsWindow = 800

var indicationsAnchor = regexp.MustCompile(`(?i)Indications for Use`)

// compiledRule is one extraction pattern bound to its field.
type compiledRule struct {
	pattern  *regexp.Regexp
	priority int
	value    int
}

// RuleEngine extracts structured fields from document text.
// A RuleEngine is immutable once compiled and safe for concurrent use.
type RuleEngine struct {
	fields []string
	rules  map[string][]compiledRule
}

// CompileRules builds a RuleEngine from a rule table. Rules are grouped by
// field and tried in ascending priority; rules with equal priority keep
// their input order. Every pattern is case-insensitive and multi-line and
// must contain a named group "value".
func CompileRules(rules []domain.ExtractionRule) (*RuleEngine, error) {
	e := &RuleEngine{rules: make(map[string][]compiledRule)}

	for _, r := range rules {
		if r.FieldName == "" {
			return nil, fmt.Errorf("rule %d: %w: empty field name", r.ID, domain.ErrInvalidInput)
		}
		re, err := regexp.Compile("(?im)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d for %s: %w", r.ID, r.FieldName, err)
		}
		idx := re.SubexpIndex("value")
		if idx < 0 {
			return nil, fmt.Errorf("rule %d for %s: %w: pattern has no named group \"value\"",
				r.ID, r.FieldName, domain.ErrInvalidInput)
		}
		if _, ok := e.rules[r.FieldName]; !ok {
			e.fields = append(e.fields, r.FieldName)
		}
		e.rules[r.FieldName] = append(e.rules[r.FieldName], compiledRule{
			pattern:  re,
			priority: r.Priority,
			value:    idx,
		})
	}

	for _, field := range e.fields {
		group := e.rules[field]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].priority < group[j].priority
		})
	}
	sort.Strings(e.fields)

	return e, nil
}

// Fields returns the field names the engine has rules for.
func (e *RuleEngine) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Extract applies the rules to text. For each field the first matching
// pattern wins and its trimmed "value" group is used. The indications
// field is always taken from the window after the indications anchor, and
// full_text is the trimmed input. Returns a *domain.ExtractionError when
// a required field is missing or empty.
func (e *RuleEngine) Extract(text string) (domain.FieldMap, error) {
	fields := make(domain.FieldMap, len(e.fields)+2)

	for _, field := range e.fields {
		for _, rule := range e.rules[field] {
			m := rule.pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			fields[field] = strings.TrimSpace(m[rule.value])
			break
		}
	}

	fields[domain.FieldIndicationsForUse] = extractIndications(text)
	fields[domain.FieldFullText] = strings.TrimSpace(text)

	if missing := missingRequired(fields); len(missing) > 0 {
		return fields, &domain.ExtractionError{MissingFields: missing}
	}
	return fields, nil
}

// extractIndications returns the whitespace-normalised window following
// the first "Indications for Use" anchor, or "" when there is none.
func extractIndications(text string) string {
	loc := indicationsAnchor.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := []rune(text[loc[1]:])
	if len(rest) > indicationsWindow {
		rest = rest[:indicationsWindow]
	}
	return strings.Join(strings.Fields(string(rest)), " ")
}

func missingRequired(fields domain.FieldMap) []string {
	var missing []string
	for _, f := range domain.RequiredFields {
		if fields[f] == "" {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)
	return missing
}
