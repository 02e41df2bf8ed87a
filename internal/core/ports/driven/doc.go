// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Versioned document and file pointer persistence
//   - MatchStore: Match persistence
//   - AuditStore: Append-only audit trail
//   - RuleStore: Extraction rule table
//   - RuleWriter: Adds extraction rules
//   - SearchEngine: Full-text ranking over stored documents
//   - FileSource: Directory listing, stat and change notification
//   - TextExtractor: PDF to plain text
//   - ReportRenderer: Template rendering
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportArchive: Persists rendered reports outside the database
//   - Metrics: Operational counters and timings
//   - SchedulerStore: Background task state
//   - PostProcessor: Clean-up steps applied to extracted text
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
