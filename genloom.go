// Package genloom is the high-level entry point for the generation
// toolchain. It wraps the internal pipeline and provides one method per
// run mode, each executing the mode's fixed stage ordering against the
// mode's own database file.
package genloom

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weftworks/genloom/internal/dbfile"
	"github.com/weftworks/genloom/internal/defaults"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/pipeline"
)

// Version is the build version reported by the CLI and the status API.
const Version = "0.3.0"

// Database path suffixes, fixed per run mode.
const (
	SuffixGenerate  = "generate"
	SuffixSDKRegen  = "sdk-regen"
	SuffixSelfCheck = "self-check"
)

// Runner executes pipeline invocations against one data directory.
// Concurrent invocations must use distinct database paths; the per-mode
// suffixes guarantee that across modes, and callers must not run two
// invocations of the same mode at once.
type Runner struct {
	dataDir string
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDataDir overrides the default data directory (~/.genloom).
func WithDataDir(dir string) Option {
	return func(r *Runner) { r.dataDir = dir }
}

// WithLogger sets the process-wide diagnostic sink.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner, resolving and creating the data directory.
func NewRunner(opts ...Option) (*Runner, error) {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	if r.dataDir == "" {
		dir, err := dbfile.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("initializing runner: %w", err)
		}
		r.dataDir = dir
	}
	return r, nil
}

// DatabasePath returns the database file used by a mode suffix
// ("" names the primary interactive database).
func (r *Runner) DatabasePath(suffix string) string {
	return dbfile.PathIn(r.dataDir, suffix)
}

// GenerationOptions parameterizes a headless generation run.
type GenerationOptions struct {
	OutputDir           string
	TemplatePackagePath string
	DomainMetadataPath  string
	InputStatePath      string // optional JSON seed for the session state
	Config              pipeline.RunConfig
}

// Generate runs the headless generation pipeline. The database handle is
// closed before returning; the returned Context carries the identifiers
// accumulated by the run.
func (r *Runner) Generate(ctx context.Context, opts GenerationOptions) (*pipeline.Context, error) {
	in := pipeline.Inputs{
		DBPath:        r.DatabasePath(SuffixGenerate),
		MetadataPath:  opts.DomainMetadataPath,
		TemplatesPath: opts.TemplatePackagePath,
		StatePath:     opts.InputStatePath,
		OutputDir:     opts.OutputDir,
	}
	if err := r.fillDefaults(&in); err != nil {
		return nil, err
	}

	stages := pipeline.GenerationStages(in, opts.Config, r.logger)
	pc, err := pipeline.Run(ctx, r.logger, pipeline.ModeGeneration, opts.Config, stages)
	closeHandle(pc)
	return pc, err
}

// SDKOptions parameterizes the deprecated SDK regeneration run.
type SDKOptions struct {
	OutputDir          string
	DomainMetadataPath string // optional; built-in defaults when empty
	Config             pipeline.RunConfig
}

// RegenerateSDK runs the deprecated regeneration pipeline. Deprecated:
// use Generate with a template package instead.
func (r *Runner) RegenerateSDK(ctx context.Context, opts SDKOptions) (*pipeline.Context, error) {
	in := pipeline.Inputs{
		DBPath:       r.DatabasePath(SuffixSDKRegen),
		MetadataPath: opts.DomainMetadataPath,
		OutputDir:    opts.OutputDir,
	}
	if err := r.fillDefaults(&in); err != nil {
		return nil, err
	}

	stages := pipeline.SDKRegenerationStages(in, opts.Config, r.logger)
	pc, err := pipeline.Run(ctx, r.logger, pipeline.ModeSDK, opts.Config, stages)
	closeHandle(pc)
	return pc, err
}

// SelfCheck runs the self-check pipeline against the fixed self-check
// database using the built-in defaults. Runs are independent: each one
// deletes and recreates the self-check database.
func (r *Runner) SelfCheck(ctx context.Context, cfg pipeline.RunConfig) (*pipeline.Context, error) {
	in := pipeline.Inputs{DBPath: r.DatabasePath(SuffixSelfCheck)}
	if err := r.fillDefaults(&in); err != nil {
		return nil, err
	}

	stages := pipeline.SelfCheckStages(in, cfg)
	pc, err := pipeline.Run(ctx, r.logger, pipeline.ModeSelfCheck, cfg, stages)
	closeHandle(pc)
	return pc, err
}

// StartInteractive runs the interactive pipeline against the primary
// database and returns the Context with its handle still open. The caller
// owns the handle from here (serving interface or landing notice) and
// must close it on teardown.
func (r *Runner) StartInteractive(ctx context.Context, cfg pipeline.RunConfig) (*pipeline.Context, error) {
	in := pipeline.Inputs{DBPath: r.DatabasePath("")}
	if err := r.fillDefaults(&in); err != nil {
		return nil, err
	}

	stages := pipeline.InteractiveStages(in)
	pc, err := pipeline.Run(ctx, r.logger, pipeline.ModeInteractive, cfg, stages)
	if err != nil {
		closeHandle(pc)
		return pc, err
	}
	return pc, nil
}

// ClearDatabase backs up and clears the primary database file. This is a
// maintenance action independent of any pipeline invocation; a failure
// here never corrupts pipeline state.
func (r *Runner) ClearDatabase() error {
	return dbfile.BackupAndClear(r.DatabasePath(""), r.logger)
}

// fillDefaults substitutes the built-in packages for unset input paths.
func (r *Runner) fillDefaults(in *pipeline.Inputs) error {
	if in.MetadataPath != "" && in.TemplatesPath != "" {
		return nil
	}
	paths, err := defaults.Ensure(r.dataDir)
	if err != nil {
		return err
	}
	if in.MetadataPath == "" {
		in.MetadataPath = paths.Metadata
	}
	if in.TemplatesPath == "" {
		in.TemplatesPath = paths.Templates
	}
	return nil
}

func closeHandle(pc *pipeline.Context) {
	if pc != nil && pc.DB != nil {
		_ = pc.DB.Close()
	}
}
