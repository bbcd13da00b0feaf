// Package apperr defines the error kinds surfaced across the store and
// query engine, so callers can classify a failure with errors.Is.
package apperr

import "errors"

// Sentinel errors for each failure kind. Wrap these with
// fmt.Errorf("...: %w", ...) to attach context while keeping errors.Is working.
var (
	// ErrNotFound covers a missing store file or an unknown machine name.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable covers an open failure or a missing connection.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrQueryFailed covers a statement prepare/bind/step failure.
	ErrQueryFailed = errors.New("query failed")
	// ErrIngestParseFailed covers ill-formed catalog XML.
	ErrIngestParseFailed = errors.New("ingest parse failed")
	// ErrIngestWriteFailed covers schema creation, insert, or backup failure.
	ErrIngestWriteFailed = errors.New("ingest write failed")
	// ErrAlreadyExists covers an output path that exists with overwrite disabled.
	ErrAlreadyExists = errors.New("already exists")
)
