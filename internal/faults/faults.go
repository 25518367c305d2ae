// Package faults defines the error taxonomy shared by the generation pipeline.
// Every stage failure is one of these types; the orchestrator logs it once and
// re-raises it unchanged, so callers can classify failures with errors.As.
package faults

import "fmt"

// FilesystemError reports a failed delete or rename on the database file.
type FilesystemError struct {
	Op   string // "remove", "rename"
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// DatabaseError reports a failed open or a corrupted database file.
type DatabaseError struct {
	Path string
	Err  error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %q: %v", e.Path, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// SchemaError reports a schema version mismatch or a malformed schema.
type SchemaError struct {
	Want string // expected schema version
	Got  string // version found in the database, if any
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Got != "" && e.Got != e.Want {
		return fmt.Sprintf("schema version mismatch: database has %q, expected %q", e.Got, e.Want)
	}
	return fmt.Sprintf("schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// LoadError reports malformed domain metadata or a malformed template package.
type LoadError struct {
	Source string // file or package path
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SessionError reports a failed session creation or package binding.
type SessionError struct {
	SessionID string // empty if the session was never created
	Err       error
}

func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("session: %v", e.Err)
	}
	return fmt.Sprintf("session %s: %v", e.SessionID, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// GenerationError reports a template rendering or output-write failure.
type GenerationError struct {
	Template string // template name, empty for setup failures
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("generation: %v", e.Err)
	}
	return fmt.Sprintf("generation template %q: %v", e.Template, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
