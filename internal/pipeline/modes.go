package pipeline

import (
	"log/slog"

	"github.com/weftworks/genloom/internal/store"
)

// Inputs carries the per-invocation paths consumed by the mode builders.
type Inputs struct {
	DBPath        string
	MetadataPath  string
	TemplatesPath string
	StatePath     string // optional initial session state (JSON)
	OutputDir     string
}

// InteractiveStages is the ordering for a resident run: open the primary
// database and load the built-in packages. The serving interface (or the
// landing notice) is started by the caller after the pipeline settles;
// sessions are created on demand through it.
func InteractiveStages(in Inputs) []Stage {
	return []Stage{
		OpenDatabaseStage(in.DBPath),
		ApplySchemaStage(store.SchemaVersion),
		LoadMetadataStage(in.MetadataPath),
		LoadTemplatesStage(in.TemplatesPath),
	}
}

// GenerationStages is the full headless ordering: fresh database per the
// configuration, caller-supplied metadata and template package, a blank
// session with the default package set, then artifact generation.
func GenerationStages(in Inputs, cfg RunConfig, logger *slog.Logger) []Stage {
	return []Stage{
		EnsureFreshStage(in.DBPath, cfg.CleanDB),
		OpenDatabaseStage(in.DBPath),
		ApplySchemaStage(store.SchemaVersion),
		LoadMetadataStage(in.MetadataPath),
		LoadTemplatesStage(in.TemplatesPath),
		CreateSessionStage(),
		SeedSessionStateStage(in.StatePath),
		InitializeSessionPackagesStage(),
		GenerateStage(in.OutputDir, logger),
	}
}

// SDKRegenerationStages is the deprecated ordering kept for backward
// compatibility: a degenerate form of generation that skips template
// packages and sessions and delegates to the legacy routine. It is kept
// separate rather than unified with GenerationStages so its behavior
// never drifts.
func SDKRegenerationStages(in Inputs, cfg RunConfig, logger *slog.Logger) []Stage {
	return []Stage{
		EnsureFreshStage(in.DBPath, cfg.CleanDB),
		OpenDatabaseStage(in.DBPath),
		ApplySchemaStage(store.SchemaVersion),
		LoadMetadataStage(in.MetadataPath),
		RegenerateSDKStage(in.OutputDir, logger),
	}
}

// SelfCheckStages exercises the load path against the fixed self-check
// database using the built-in defaults, leaving no session behind.
func SelfCheckStages(in Inputs, cfg RunConfig) []Stage {
	return []Stage{
		EnsureFreshStage(in.DBPath, cfg.CleanDB),
		OpenDatabaseStage(in.DBPath),
		ApplySchemaStage(store.SchemaVersion),
		LoadMetadataStage(in.MetadataPath),
		LoadTemplatesStage(in.TemplatesPath),
	}
}
