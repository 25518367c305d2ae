package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/weftworks/genloom/internal/dbfile"
	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/generator"
	"github.com/weftworks/genloom/internal/metadata"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/templates"
)

// Stage is one ordered unit of pipeline work. A stage consumes the
// accumulated Context, performs exactly one step, and either appends its
// result to the Context or fails the whole invocation. A stage must not
// run before its predecessors have completed; the orchestrator guarantees
// strictly sequential execution.
type Stage struct {
	Name string
	Run  func(ctx context.Context, pc *Context) error
}

// EnsureFreshStage discards a pre-existing database file when discard is
// true. It always runs strictly before the database is opened, so the file
// on disk and the handle are never both stale.
func EnsureFreshStage(path string, discard bool) Stage {
	return Stage{
		Name: "ensure-fresh",
		Run: func(ctx context.Context, pc *Context) error {
			if pc.DB != nil {
				return fmt.Errorf("ensure-fresh must run before the database is opened")
			}
			return dbfile.EnsureFresh(path, discard)
		},
	}
}

// OpenDatabaseStage opens or creates the database file and stores the
// handle in the Context.
func OpenDatabaseStage(path string) Stage {
	return Stage{
		Name: "open-database",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := store.Open(path)
			if err != nil {
				return err
			}
			return pc.setDB(db)
		},
	}
}

// ApplySchemaStage initializes or verifies the database schema.
func ApplySchemaStage(version string) Stage {
	return Stage{
		Name: "apply-schema",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			if err := db.ApplySchema(ctx, version); err != nil {
				return err
			}
			return pc.setSchemaVersion(version)
		},
	}
}

// LoadMetadataStage loads a domain metadata package and records its id.
func LoadMetadataStage(path string) Stage {
	return Stage{
		Name: "load-metadata",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			id, err := metadata.Load(ctx, db, path)
			if err != nil {
				return err
			}
			return pc.setMetadataPackage(id)
		},
	}
}

// LoadTemplatesStage loads a generation template package and records its id.
func LoadTemplatesStage(path string) Stage {
	return Stage{
		Name: "load-templates",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			id, err := templates.Load(ctx, db, path)
			if err != nil {
				return err
			}
			return pc.setTemplatePackage(id)
		},
	}
}

// CreateSessionStage creates a fresh blank session.
func CreateSessionStage() Stage {
	return Stage{
		Name: "create-session",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			id, err := db.CreateBlankSession(ctx)
			if err != nil {
				return err
			}
			return pc.setSession(id)
		},
	}
}

// SeedSessionStateStage loads the optional caller-supplied input state file
// (a JSON object) into the session's key/value state. With an empty path
// the stage is a no-op.
func SeedSessionStateStage(path string) Stage {
	return Stage{
		Name: "seed-session-state",
		Run: func(ctx context.Context, pc *Context) error {
			if path == "" {
				return nil
			}
			db, err := pc.requireDB()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return &faults.LoadError{Source: path, Err: err}
			}
			var state map[string]any
			if err := json.Unmarshal(raw, &state); err != nil {
				return &faults.LoadError{Source: path, Err: fmt.Errorf("parsing input state: %w", err)}
			}

			for key, value := range state {
				encoded, err := json.Marshal(value)
				if err != nil {
					return &faults.LoadError{Source: path, Err: err}
				}
				if err := db.PutSessionValue(ctx, pc.SessionID, key, string(encoded)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// InitializeSessionPackagesStage binds the session's default package set.
func InitializeSessionPackagesStage() Stage {
	return Stage{
		Name: "init-session-packages",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			_, err = db.InitializeSessionPackages(ctx, pc.SessionID)
			return err
		},
	}
}

// GenerateStage renders the session's template package and writes the
// artifacts to outDir.
func GenerateStage(outDir string, logger *slog.Logger) Stage {
	return Stage{
		Name: "generate",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			if err := pc.setOutputDir(outDir); err != nil {
				return err
			}
			return generator.Generate(ctx, db, pc.SessionID, pc.TemplatePackageID, outDir, logger)
		},
	}
}

// RegenerateSDKStage delegates to the legacy SDK regeneration routine.
func RegenerateSDKStage(outDir string, logger *slog.Logger) Stage {
	return Stage{
		Name: "regenerate-sdk",
		Run: func(ctx context.Context, pc *Context) error {
			db, err := pc.requireDB()
			if err != nil {
				return err
			}
			if err := pc.setOutputDir(outDir); err != nil {
				return err
			}
			return generator.RegenerateSDK(ctx, db, outDir, logger)
		},
	}
}
