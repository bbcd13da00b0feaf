// Package store owns the on-disk SQLite representation of an ingested
// catalog: schema creation, bulk loading, and serialized query execution.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/glebarez/go-sqlite"

	"github.com/xxxsen/mameset/internal/apperr"
)

// Handle owns one open connection to a store file. All access is serialized
// through mu: the connection is never driven by two goroutines at once,
// matching the single-writer, serialized-reader model the store is built for.
type Handle struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Handle{}
)

// Open returns the Handle for path, creating and caching a new one on first
// use. A repeated Open of the same path returns the same Handle.
func Open(path string) (*Handle, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if h, ok := cache[path]; ok {
		return h, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperr.ErrStoreUnavailable, path, err)
	}
	// One physical connection per handle. Every statement runs on the same
	// connection, in submission order.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", apperr.ErrStoreUnavailable, path, err)
	}

	h := &Handle{path: path, db: db}
	cache[path] = h
	return h, nil
}

// openMemory opens a fresh, uncached in-memory handle, used by the Writer to
// build a catalog before it is snapshotted to a target file.
func openMemory() (*Handle, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	// A pooled second connection to ":memory:" would open a second, empty
	// database. Pin the pool to the one connection holding the data.
	db.SetMaxOpenConns(1)
	return &Handle{path: ":memory:", db: db}, nil
}

// Close releases the underlying connection and evicts path from the cache.
func (h *Handle) Close() error {
	cacheMu.Lock()
	if cache[h.path] == h {
		delete(cache, h.path)
	}
	cacheMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.Close()
}

// Query runs a parameterized read-only statement against the connection,
// serialized against every other operation on this Handle.
func (h *Handle) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.QueryContext(ctx, query, args...)
}

// QueryRow runs a parameterized single-row statement, serialized against
// every other operation on this Handle.
func (h *Handle) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.QueryRowContext(ctx, query, args...)
}

// withTx runs fn inside a transaction, serialized against every other
// operation on this Handle, committing on success and rolling back on error.
func (h *Handle) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// backupTo snapshots this handle's database into targetPath using SQLite's
// own VACUUM INTO, isolating bulk-insert I/O from the final file write.
func (h *Handle) backupTo(ctx context.Context, targetPath string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.db.ExecContext(ctx, "VACUUM INTO ?", targetPath)
	return err
}
