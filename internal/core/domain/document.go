package domain

import "time"

// UnknownManufacturerAddress is stored when no address could be extracted.
const UnknownManufacturerAddress = "Unknown"

// DocumentFields holds the structured fields extracted from a regulatory document.
type DocumentFields struct {
	// DocumentName is the device or submission name.
	DocumentName string

	// DocumentType describes the kind of device. Falls back to DocumentName.
	DocumentType string

	// RegistrationNumber is the submission identifier (e.g. K123456).
	RegistrationNumber string

	// RegulationNumber is the regulation citation (e.g. 21 CFR 870.4350).
	RegulationNumber string

	// RegulationName is the name of the cited regulation.
	RegulationName string

	// ClassificationCode is the regulatory class.
	ClassificationCode string

	ManufacturerName    string
	ManufacturerAddress string

	// ProductCodes is the raw product code list as it appears in the document.
	ProductCodes string

	// IndicationsForUse is the whitespace-normalised indications excerpt.
	IndicationsForUse string
}

// Document is one extracted version of an ingested file.
// Documents are append-only: a changed file produces a new Document
// with the next version number, and earlier versions are never modified.
type Document struct {
	// ID is assigned by the store on insert.
	ID int64

	// ClientID is the partition key the document belongs to.
	ClientID int64

	// FilePath is the source file the document was extracted from.
	FilePath string

	// Version starts at 1 and increases by one per re-ingest of FilePath.
	Version int

	Fields DocumentFields

	// FullText is the complete extracted text.
	FullText string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentSummary is the list projection of a Document.
type DocumentSummary struct {
	ID                 int64
	FilePath           string
	Version            int
	DocumentName       string
	RegistrationNumber string
	ManufacturerName   string
	ClassificationCode string
}

// DocumentDetail is a Document with a bounded excerpt of its text, for display.
type DocumentDetail struct {
	Document
	FullTextExcerpt string
}

// ExcerptLength is the number of runes kept in DocumentDetail.FullTextExcerpt.
const ExcerptLength = 400

// Excerpt returns the first n runes of s.
func Excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// FilePointer links a file path to its latest ingested Document.
// There is at most one pointer per (ClientID, FilePath).
type FilePointer struct {
	ClientID int64
	FilePath string

	// LastModified is the file modification time observed at the last ingest.
	LastModified time.Time

	DocumentID int64
	Version    int
}
