package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/weftworks/genloom/internal/faults"
)

// SchemaVersion is the schema generation this build of genloom writes and
// expects. Opening a database written by a different generation fails with
// a SchemaError rather than silently migrating.
const SchemaVersion = "1"

//go:embed schema.sql
var schemaSQL string

// ApplySchema initializes the schema on a freshly opened database, or
// verifies the version stamp of an already initialized one.
func (d *DB) ApplySchema(ctx context.Context, version string) error {
	got, err := d.schemaVersion(ctx)
	if err != nil {
		return &faults.SchemaError{Want: version, Err: err}
	}

	if got != "" {
		if got != version {
			return &faults.SchemaError{Want: version, Got: got, Err: errors.New("version mismatch")}
		}
		return nil
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return &faults.SchemaError{Want: version, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return &faults.SchemaError{Want: version, Err: fmt.Errorf("applying schema: %w", err)}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_meta (key, value) VALUES ('version', ?)`, version); err != nil {
		return &faults.SchemaError{Want: version, Err: fmt.Errorf("stamping version: %w", err)}
	}
	if err := tx.Commit(); err != nil {
		return &faults.SchemaError{Want: version, Err: err}
	}
	return nil
}

// schemaVersion reads the version stamp, returning "" for a blank database.
func (d *DB) schemaVersion(ctx context.Context) (string, error) {
	var exists int
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_meta'`).Scan(&exists)
	if err != nil {
		return "", err
	}
	if exists == 0 {
		return "", nil
	}

	var version string
	err = d.sql.QueryRowContext(ctx,
		`SELECT value FROM schema_meta WHERE key = 'version'`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("schema_meta table present but no version stamp")
	}
	if err != nil {
		return "", err
	}
	return version, nil
}
