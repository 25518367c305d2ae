package main

import (
	"os"

	"github.com/weftworks/genloom/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "genloom",
	Short: "genloom generates source artifacts from a declarative device model",
	Long: `genloom drives a staged pipeline that loads a device model (clusters,
attributes, commands) and generation template packages into a persistent
database, then renders the templates into output artifacts.

Run without a subcommand to start the interactive mode: the built-in
packages are loaded into the primary database and the serving interface
exposes them over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		port, _ := cmd.Flags().GetString("port")
		noServer, _ := cmd.Flags().GetBool("no-server")
		showURL, _ := cmd.Flags().GetBool("show-url")
		logEnabled, _ := cmd.Flags().GetBool("log")

		os.Exit(cli.RunServe(cli.ServeOptions{
			Port:     port,
			NoServer: noServer,
			ShowURL:  showURL,
			DataDir:  dataDir,
			Log:      logEnabled,
		}))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory holding genloom databases (default ~/.genloom)")

	// Interactive mode flags
	rootCmd.Flags().StringP("port", "p", "9070", "Port for the serving interface")
	rootCmd.Flags().Bool("no-server", false, "Run the pipeline without the serving interface and exit")
	rootCmd.Flags().Bool("show-url", false, "Print the serving URL on startup")
	rootCmd.Flags().Bool("log", true, "Emit progress logging")
}
