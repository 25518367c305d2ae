package cli

import (
	"context"
	"fmt"

	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/pipeline"
)

// SelfCheckOptions contains the configuration for the selfcheck command.
type SelfCheckOptions struct {
	DataDir string
	Log     bool
}

// RunSelfCheck exercises the load path against the throwaway self-check
// database. Each run is independent: the database is deleted and
// recreated every time.
func RunSelfCheck(opts SelfCheckOptions) int {
	logger := logging.ForRun(opts.Log)

	runner, err := genloom.NewRunner(
		genloom.WithDataDir(opts.DataDir),
		genloom.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize runner", "err", err)
		return 1
	}

	cfg := pipeline.DefaultConfig()
	cfg.Log = opts.Log

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	_, err = runner.SelfCheck(sigCtx, cfg)

	code, _ := pipeline.Disposition(cfg, err)
	if code == 0 && opts.Log {
		fmt.Println("Self-check passed.")
	}
	return code
}
