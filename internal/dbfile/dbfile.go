// Package dbfile owns the on-disk lifecycle of genloom database files:
// existence checks, fresh-start removal and backup-rename. It never opens
// the database itself; that is the store package's job.
package dbfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weftworks/genloom/internal/faults"
)

// BackupSuffix is appended to a database path when the live file is
// moved aside by BackupAndClear.
const BackupSuffix = "~"

// baseName is the stem of every genloom database file.
const baseName = "genloom"

// EnsureFresh deletes the file at path when discard is true.
// With discard false, or when no file exists, the disk is left untouched.
// Removal happens strictly before any handle is acquired on the path.
func EnsureFresh(path string, discard bool) error {
	if !discard {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &faults.FilesystemError{Op: "stat", Path: path, Err: err}
	}
	if err := os.Remove(path); err != nil {
		return &faults.FilesystemError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// BackupAndClear moves the live database file at path aside to path+BackupSuffix.
// A stale backup is deleted first (with a warning), so two consecutive calls
// never lose data: the second call finds no live file and is a no-op.
// This is a user-triggered maintenance action, never part of a pipeline run.
func BackupAndClear(path string, logger *slog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &faults.FilesystemError{Op: "stat", Path: path, Err: err}
	}

	backup := path + BackupSuffix
	if _, err := os.Stat(backup); err == nil {
		logger.Warn("Deleting stale database backup", "path", backup)
		if err := os.Remove(backup); err != nil {
			return &faults.FilesystemError{Op: "remove", Path: backup, Err: err}
		}
	}

	if err := os.Rename(path, backup); err != nil {
		return &faults.FilesystemError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// DefaultDir resolves the genloom data directory, creating it if needed.
// GENLOOM_HOME overrides the default of ~/.genloom.
func DefaultDir() (string, error) {
	dir := os.Getenv("GENLOOM_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".genloom")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// PathIn returns the database file path for a run mode inside dir.
// An empty suffix names the primary (interactive) database; pipeline modes
// use their fixed suffixes ("generate", "sdk-regen", "self-check") so that
// concurrent invocations of different modes never share a file.
func PathIn(dir, suffix string) string {
	name := baseName
	if suffix != "" {
		name += "." + suffix
	}
	return filepath.Join(dir, name+".sqlite")
}
