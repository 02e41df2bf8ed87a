package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPrecondition indicates an operation was invoked before the state it
	// depends on exists, such as generating a report for an unconfirmed match.
	ErrPrecondition = errors.New("precondition failed")

	// ErrExtraction indicates required fields could not be extracted from a document.
	ErrExtraction = errors.New("extraction failed")

	// ErrPDFToolNotFound indicates the PDF text extraction tool is not installed.
	ErrPDFToolNotFound = errors.New("pdf text extraction tool not found")
)

// ExtractionError lists the required fields that were absent or empty
// after running the extraction rules over a document's text.
type ExtractionError struct {
	MissingFields []string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// Is reports whether the target is ErrExtraction.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
