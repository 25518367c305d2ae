package cli

import (
	"fmt"

	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/logging"
)

// ClearDBOptions contains the configuration for the cleardb command.
type ClearDBOptions struct {
	DataDir string
}

// RunClearDB backs up and clears the primary database file. The next
// interactive run starts from a blank database; the previous content
// stays in the backup file.
func RunClearDB(opts ClearDBOptions) int {
	logger := logging.ForRun(true)

	runner, err := genloom.NewRunner(
		genloom.WithDataDir(opts.DataDir),
		genloom.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize runner", "err", err)
		return 1
	}

	if err := runner.ClearDatabase(); err != nil {
		logger.Error("Failed to clear database file", "err", err)
		return 1
	}

	fmt.Printf("Database cleared: %s\n", runner.DatabasePath(""))
	return 0
}
