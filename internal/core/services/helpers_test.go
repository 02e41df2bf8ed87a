package services

import (
	"fmt"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// testRules mirrors the rule set seeded for client 1.
func testRules() []domain.ExtractionRule {
	return []domain.ExtractionRule{
		{ID: 1, FieldName: domain.FieldDocumentName, Pattern: `^[ \t]*Trade/Device Name:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 2, FieldName: domain.FieldDocumentName, Pattern: `^[ \t]*Device Name:[ \t]*(?P<value>.+)$`, Priority: 2},
		{ID: 3, FieldName: domain.FieldDocumentType, Pattern: `^[ \t]*Common (?:or Usual )?Name:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 4, FieldName: domain.FieldRegistrationNumber, Pattern: `510\(k\) Number:[ \t]*(?P<value>K\d{6})`, Priority: 1},
		{ID: 5, FieldName: domain.FieldRegistrationNumber, Pattern: `\b(?P<value>K\d{6})\b`, Priority: 2},
		{ID: 6, FieldName: domain.FieldRegulationNumber, Pattern: `^[ \t]*Regulation Number:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 7, FieldName: domain.FieldRegulationName, Pattern: `^[ \t]*Regulation Name:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 8, FieldName: domain.FieldClassificationCode, Pattern: `^[ \t]*Regulatory Class:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 9, FieldName: domain.FieldProductCodes, Pattern: `^[ \t]*Product Codes?:[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 10, FieldName: domain.FieldManufacturerName, Pattern: `^[ \t]*(?:Manufacturer|Applicant|Submitter):[ \t]*(?P<value>.+)$`, Priority: 1},
		{ID: 11, FieldName: domain.FieldManufacturerAddress, Pattern: `^[ \t]*Address:[ \t]*(?P<value>.+)$`, Priority: 1},
	}
}

// sampleText renders a minimal 510(k) summary.
func sampleText(name, kNumber, manufacturer, indications string) string {
	return fmt.Sprintf(`510(k) Summary
Trade/Device Name: %s
Common Name: Cardiopulmonary bypass oxygenator
510(k) Number: %s
Regulation Number: 21 CFR 870.4350
Regulation Name: Cardiopulmonary bypass oxygenator
Regulatory Class: Class II
Product Codes: DTZ, DTN
Manufacturer: %s
Address: 1 Main Street, Springfield

Indications for Use
%s
`, name, kNumber, manufacturer, indications)
}

func mustEngine(rules []domain.ExtractionRule) *RuleEngine {
	e, err := CompileRules(rules)
	if err != nil {
		panic(err)
	}
	return e
}
