// Package sqlite provides the SQLite implementation of the driven storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single Store owns one database handle and vends the individual ports
// through wrapper types:
//
//   - DocumentStore: versioned documents and file pointers
//   - SearchEngine: FTS5 ranking over current document versions
//   - MatchStore: matches and their confirmed selections
//   - AuditStore: the append-only audit trail
//   - RuleStore: the extraction rule table
//   - SchedulerStore: background task state and history
//
// # Schema
//
// The schema is managed with goose migrations embedded from the migrations/
// directory. Documents and audit events are append-only and a match's candidate
// list is frozen once written; storage triggers reject writes that would break
// either property.
//
// # Concurrency
//
// The handle is limited to one open connection, so every statement runs on a
// single session and each write is one atomic statement.
package sqlite
