// Package memory provides in-memory implementations of the driven ports.
// They back the core service tests and are safe for concurrent use.
package memory
