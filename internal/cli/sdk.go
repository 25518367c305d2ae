package cli

import (
	"context"

	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/pipeline"
)

// SDKOptions contains the configuration for the deprecated sdk-regen command.
type SDKOptions struct {
	OutputDir    string
	MetadataPath string
	DataDir      string
	Quit         bool
	CleanDB      bool
}

// RunSDKRegen executes the deprecated SDK regeneration pipeline.
func RunSDKRegen(opts SDKOptions) int {
	logger := logging.ForRun(true)
	logger.Warn("sdk-regen is deprecated; use 'genloom generate' with a template package")

	runner, err := genloom.NewRunner(
		genloom.WithDataDir(opts.DataDir),
		genloom.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize runner", "err", err)
		return 1
	}

	cfg := pipeline.RunConfig{Quit: opts.Quit, CleanDB: opts.CleanDB, Log: true}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	_, err = runner.RegenerateSDK(sigCtx, genloom.SDKOptions{
		OutputDir:          opts.OutputDir,
		DomainMetadataPath: opts.MetadataPath,
		Config:             cfg,
	})

	code, _ := pipeline.Disposition(cfg, err)
	return code
}
