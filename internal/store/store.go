// Package store is the persistence layer of genloom. It wraps a single
// file-backed SQLite database holding the generation schema, loaded domain
// packages and per-run session state.
//
// A *DB is exclusively owned by the pipeline invocation that opened it.
// Two invocations must never share a path concurrently; modes therefore
// open distinct files (see the dbfile package).
package store

import (
	"database/sql"
	"errors"

	"github.com/weftworks/genloom/internal/faults"
	_ "modernc.org/sqlite"
)

// ErrPackageNotFound is returned when a package lookup matches no row.
var ErrPackageNotFound = errors.New("package not found")

// ErrSessionNotFound is returned when a session lookup matches no row.
var ErrSessionNotFound = errors.New("session not found")

// DB is an open handle to a genloom database file.
type DB struct {
	sql  *sql.DB
	path string
}

// Open opens (or creates) the database file at path.
// WAL journaling keeps reads cheap while the loaders write; foreign keys
// guard the package/session reference graph.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, &faults.DatabaseError{Path: path, Err: err}
	}

	// sql.Open is lazy; force the file open now so corruption and I/O
	// failures surface here instead of in the first stage that queries.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &faults.DatabaseError{Path: path, Err: err}
	}

	return &DB{sql: db, path: path}, nil
}

// Close releases the underlying handle.
func (d *DB) Close() error {
	if d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Path returns the on-disk location of the database file.
func (d *DB) Path() string { return d.path }
