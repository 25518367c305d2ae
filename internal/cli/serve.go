package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/pipeline"
	"github.com/weftworks/genloom/internal/presentation/tui"
	"github.com/weftworks/genloom/internal/server"
	"golang.org/x/term"
)

// ServeOptions contains the configuration for the interactive mode.
type ServeOptions struct {
	Port     string
	NoServer bool // run the pipeline, print the landing notice, exit
	ShowURL  bool
	DataDir  string
	Log      bool
}

// RunServe executes the interactive pipeline and, unless disabled, stays
// resident behind the HTTP serving interface until interrupted.
func RunServe(opts ServeOptions) int {
	logger := logging.ForRun(opts.Log)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		tui.PrintBanner(genloom.Version)
	}

	runner, err := genloom.NewRunner(
		genloom.WithDataDir(opts.DataDir),
		genloom.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize runner", "err", err)
		return 1
	}

	// Interactive runs keep the primary database across invocations and
	// stay resident only when the serving interface is enabled.
	cfg := pipeline.RunConfig{Quit: opts.NoServer, CleanDB: false, Log: opts.Log}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	pc, err := runner.StartInteractive(sigCtx, cfg)
	code, keepAlive := pipeline.Disposition(cfg, err)
	if err != nil {
		return code
	}
	defer pc.DB.Close()

	if !keepAlive {
		tui.PrintLandingNotice()
		return 0
	}

	handler := server.NewHandler(pc.DB, server.Info{
		Version:       genloom.Version,
		DBPath:        pc.DB.Path(),
		SchemaVersion: pc.SchemaVersion,
	})

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		if opts.ShowURL {
			tui.PrintURL(srv.Addr)
		}
		logger.Info("Serving interface started", "addr", srv.Addr, "db", pc.DB.Path())
		serverErrors <- srv.ListenAndServe()
	}()

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		logger.Error("Server error", "err", err)
		return 1

	case <-sigCtx.Done():
		fmt.Printf("\nShutting down... Signal: %v\n", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				logger.Error("Error killing server", "err", err)
			}
		}
		fmt.Println("genloom stopped gracefully")
	}
	return 0
}
