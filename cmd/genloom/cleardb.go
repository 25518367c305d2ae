package main

import (
	"os"

	"github.com/weftworks/genloom/internal/cli"
	"github.com/spf13/cobra"
)

var clearDBCmd = &cobra.Command{
	Use:   "cleardb",
	Short: "Back up and clear the primary database file",
	Long: `Renames the primary database file to its backup name, deleting any
stale backup first. The next interactive run starts from a blank database.
This maintenance action is independent of the generation pipeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")

		os.Exit(cli.RunClearDB(cli.ClearDBOptions{
			DataDir: dataDir,
		}))
	},
}

func init() {
	rootCmd.AddCommand(clearDBCmd)
}
