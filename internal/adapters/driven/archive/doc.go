// Package archive stores generated reports in a local directory or an
// S3-compatible bucket.
package archive
