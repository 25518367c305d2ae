// Package pipeline sequences the asynchronous stages that take a genloom
// database from an empty file to generated artifacts. The orchestrator
// enforces a strict total order over stages, fail-fast short-circuiting,
// and exactly-once failure logging through the diagnostic sink.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Mode identifies one of the fixed stage orderings.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeGeneration  Mode = "generation"
	ModeSDK         Mode = "sdk-regen"
	ModeSelfCheck   Mode = "self-check"
)

// Run threads a fresh Context through the stages in order. Any stage
// failure short-circuits the remainder; the error is recorded through the
// logger exactly once and returned to the caller, which must not log it
// again. The possibly partial Context is returned either way so callers
// can close an opened handle.
func Run(ctx context.Context, logger *slog.Logger, mode Mode, cfg RunConfig, stages []Stage) (*Context, error) {
	pc := &Context{}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf("pipeline canceled before stage %s: %w", stage.Name, err)
			recordFailure(logger, mode, stage.Name, err)
			return pc, err
		}

		if err := stage.Run(ctx, pc); err != nil {
			err = fmt.Errorf("stage %s: %w", stage.Name, err)
			recordFailure(logger, mode, stage.Name, err)
			return pc, err
		}

		stagesCompleted.WithLabelValues(stage.Name).Inc()
		if cfg.Log {
			logger.Info("Stage complete", "mode", mode, "stage", stage.Name)
		}
	}

	runsTotal.WithLabelValues(string(mode), "success").Inc()
	return pc, nil
}

func recordFailure(logger *slog.Logger, mode Mode, stage string, err error) {
	stageFailures.WithLabelValues(stage).Inc()
	runsTotal.WithLabelValues(string(mode), "failure").Inc()
	logger.Error("Pipeline failed", "mode", mode, "stage", stage, "err", err)
}

// Disposition is the run termination policy. It maps the settled outcome
// and the invocation's configuration to a process disposition: the exit
// code to use, and whether the process should instead stay resident
// (interactive runs that entered the serving state).
func Disposition(cfg RunConfig, err error) (exitCode int, keepAlive bool) {
	if err != nil {
		return 1, false
	}
	if cfg.Quit {
		return 0, false
	}
	return 0, true
}
