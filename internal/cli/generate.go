// Package cli implements the command logic behind cmd/genloom. Each
// command gets an options struct populated from flags and a Run function
// returning the process exit code; the diagnostic sink has already
// recorded any failure by the time a non-zero code is returned.
package cli

import (
	"context"

	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/pipeline"
)

// GenerateOptions contains all the configuration for the generate command.
type GenerateOptions struct {
	OutputDir    string
	TemplatePath string
	MetadataPath string
	StatePath    string
	DataDir      string
	Quit         bool
	CleanDB      bool
	Log          bool
}

// RunGenerate executes the headless generation pipeline.
func RunGenerate(opts GenerateOptions) int {
	logger := logging.ForRun(opts.Log)

	runner, err := genloom.NewRunner(
		genloom.WithDataDir(opts.DataDir),
		genloom.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize runner", "err", err)
		return 1
	}

	cfg := pipeline.RunConfig{Quit: opts.Quit, CleanDB: opts.CleanDB, Log: opts.Log}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	_, err = runner.Generate(sigCtx, genloom.GenerationOptions{
		OutputDir:           opts.OutputDir,
		TemplatePackagePath: opts.TemplatePath,
		DomainMetadataPath:  opts.MetadataPath,
		InputStatePath:      opts.StatePath,
		Config:              cfg,
	})

	code, keepAlive := pipeline.Disposition(cfg, err)
	if keepAlive {
		// quit=false: stay resident until interrupted.
		logger.Info("Generation settled; staying resident (quit=false)")
		<-sigCtx.Done()
	}
	return code
}
