// Package domain defines the core business entities for docmatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A versioned, extracted record of an ingested PDF
//   - FilePointer: The current version of a file path
//   - ExtractionRule: A pattern that extracts one field from document text
//   - Match: A search request and its frozen candidate list
//   - AuditEvent: An append-only record of a significant action
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
