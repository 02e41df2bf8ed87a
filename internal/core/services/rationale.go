package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// maxRationaleTerms caps the number of shared terms named in a rationale.
const maxRationaleTerms = 5

var termPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"the": {}, "to": {}, "with": {}, "this": {}, "that": {}, "device": {}, "use": {},
}

// Rationale explains why a document was offered as a candidate for a query.
// The output depends only on its inputs.
func Rationale(query string, doc *domain.Document) string {
	docType := strings.ToLower(strings.TrimSpace(doc.Fields.DocumentType))
	if docType == "" {
		docType = "document"
	}

	docTerms := termSet(strings.Join([]string{
		doc.Fields.DocumentName,
		doc.Fields.DocumentType,
		doc.Fields.ManufacturerName,
		doc.Fields.ProductCodes,
		doc.Fields.RegulationName,
		doc.Fields.IndicationsForUse,
		doc.FullText,
	}, " "))

	var shared []string
	for term := range termSet(query) {
		if _, ok := docTerms[term]; ok {
			shared = append(shared, term)
		}
	}
	sort.Strings(shared)
	if len(shared) > maxRationaleTerms {
		shared = shared[:maxRationaleTerms]
	}

	if len(shared) == 0 {
		return fmt.Sprintf("Similarity based on overall language overlap with the %s text.", docType)
	}
	return fmt.Sprintf("Shares terms with the query (%s) and the %s text.", strings.Join(shared, ", "), docType)
}

func termSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range termPattern.FindAllString(strings.ToLower(s), -1) {
		if len([]rune(t)) < 2 {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}
