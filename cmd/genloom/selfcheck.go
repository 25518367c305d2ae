package main

import (
	"os"

	"github.com/weftworks/genloom/internal/cli"
	"github.com/spf13/cobra"
)

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Verify the toolchain against a throwaway database",
	Long: `Runs the load pipeline against a dedicated self-check database using
the built-in packages. The database is deleted and recreated on every run,
so successive self-checks are fully independent.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		logEnabled, _ := cmd.Flags().GetBool("log")

		os.Exit(cli.RunSelfCheck(cli.SelfCheckOptions{
			DataDir: dataDir,
			Log:     logEnabled,
		}))
	},
}

func init() {
	rootCmd.AddCommand(selfcheckCmd)
	selfcheckCmd.Flags().Bool("log", true, "Emit per-stage progress lines")
}
