package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/weftworks/genloom/internal/faults"
)

// CreateBlankSession creates a fresh, isolated session and returns its id.
// The id is valid before any package binding is attempted.
func (d *DB) CreateBlankSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := d.sql.ExecContext(ctx, `INSERT INTO session (id) VALUES (?)`, id)
	if err != nil {
		return "", &faults.SessionError{Err: fmt.Errorf("creating session: %w", err)}
	}
	return id, nil
}

// InitializeSessionPackages binds every loaded package to the session,
// forming its default package set. Returns the session id for threading.
func (d *DB) InitializeSessionPackages(ctx context.Context, sessionID string) (string, error) {
	if err := d.requireSession(ctx, sessionID); err != nil {
		return "", err
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT OR IGNORE INTO session_package (session_id, package_id)
		 SELECT ?, id FROM package`, sessionID)
	if err != nil {
		return "", &faults.SessionError{SessionID: sessionID, Err: fmt.Errorf("binding packages: %w", err)}
	}
	return sessionID, nil
}

// AddSessionPackage binds a single package to the session.
func (d *DB) AddSessionPackage(ctx context.Context, sessionID string, packageID int64) error {
	if err := d.requireSession(ctx, sessionID); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT OR IGNORE INTO session_package (session_id, package_id) VALUES (?, ?)`,
		sessionID, packageID)
	if err != nil {
		return &faults.SessionError{SessionID: sessionID, Err: fmt.Errorf("binding package %d: %w", packageID, err)}
	}
	return nil
}

// SessionPackages returns the ids of the packages bound to a session.
func (d *DB) SessionPackages(ctx context.Context, sessionID string) ([]int64, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT package_id FROM session_package WHERE session_id = ? ORDER BY package_id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session packages: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning package id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Sessions lists all session ids, oldest first.
func (d *DB) Sessions(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT id FROM session ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PutSessionValue stores one key/value pair of session state.
func (d *DB) PutSessionValue(ctx context.Context, sessionID, key, value string) error {
	if err := d.requireSession(ctx, sessionID); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO session_kv (session_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value`,
		sessionID, key, value)
	if err != nil {
		return &faults.SessionError{SessionID: sessionID, Err: fmt.Errorf("storing %q: %w", key, err)}
	}
	return nil
}

// SessionValues returns all stored state for a session.
func (d *DB) SessionValues(ctx context.Context, sessionID string) (map[string]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT key, value FROM session_kv WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning session value: %w", err)
		}
		values[k] = v
	}
	return values, rows.Err()
}

func (d *DB) requireSession(ctx context.Context, sessionID string) error {
	var one int
	err := d.sql.QueryRowContext(ctx, `SELECT 1 FROM session WHERE id = ?`, sessionID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return &faults.SessionError{SessionID: sessionID, Err: ErrSessionNotFound}
	}
	if err != nil {
		return &faults.SessionError{SessionID: sessionID, Err: err}
	}
	return nil
}
