package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMap_Fields(t *testing.T) {
	m := FieldMap{
		FieldDocumentName:       "Oxygenator",
		FieldRegistrationNumber: "K123456",
		FieldProductCodes:       "DTZ, DTN",
	}

	f := m.Fields()
	assert.Equal(t, "Oxygenator", f.DocumentName)
	assert.Equal(t, "K123456", f.RegistrationNumber)
	assert.Equal(t, "DTZ, DTN", f.ProductCodes)

	t.Run("document type falls back to name", func(t *testing.T) {
		assert.Equal(t, "Oxygenator", f.DocumentType)
	})

	t.Run("address falls back to unknown", func(t *testing.T) {
		assert.Equal(t, UnknownManufacturerAddress, f.ManufacturerAddress)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		m[FieldDocumentType] = "Cardiopulmonary bypass oxygenator"
		m[FieldManufacturerAddress] = "1 Main St"
		f := m.Fields()
		assert.Equal(t, "Cardiopulmonary bypass oxygenator", f.DocumentType)
		assert.Equal(t, "1 Main St", f.ManufacturerAddress)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "abc", Excerpt("abcdef", 3))
	assert.Equal(t, "héé", Excerpt("héééé", 3))
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/docs/a.pdf", true},
		{"/docs/A.PDF", true},
		{"/docs/a.pdf.tmp", false},
		{"/docs/notes.txt", false},
		{"/docs/pdf", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.path))
		})
	}
}

func TestMatch_HasCandidate(t *testing.T) {
	m := Match{CandidateIDs: []int64{3, 7}}
	assert.True(t, m.HasCandidate(7))
	assert.False(t, m.HasCandidate(4))
}

func TestAuditEventType_Valid(t *testing.T) {
	for _, typ := range []AuditEventType{AuditIngest, AuditSearch, AuditSelect, AuditReportGenerated} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, AuditEventType("DELETE").Valid())
}
