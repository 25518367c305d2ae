package main

import (
	"os"

	"github.com/weftworks/genloom/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run headless artifact generation",
	Long: `Runs the full generation pipeline against its own database file:
loads the supplied domain metadata and template package, creates a blank
session bound to them, and renders the templates into the output directory.

The database is discarded before the run by default (--clean-db=false
reuses a previous one).`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		out, _ := cmd.Flags().GetString("out")
		tmpl, _ := cmd.Flags().GetString("templates")
		meta, _ := cmd.Flags().GetString("metadata")
		state, _ := cmd.Flags().GetString("state")
		quit, _ := cmd.Flags().GetBool("quit")
		cleanDB, _ := cmd.Flags().GetBool("clean-db")
		logEnabled, _ := cmd.Flags().GetBool("log")

		os.Exit(cli.RunGenerate(cli.GenerateOptions{
			OutputDir:    out,
			TemplatePath: tmpl,
			MetadataPath: meta,
			StatePath:    state,
			DataDir:      dataDir,
			Quit:         quit,
			CleanDB:      cleanDB,
			Log:          logEnabled,
		}))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("out", "o", "", "Output directory for generated artifacts")
	generateCmd.Flags().StringP("templates", "t", "", "Template package directory")
	generateCmd.Flags().StringP("metadata", "m", "", "Domain metadata XML file")
	generateCmd.Flags().String("state", "", "Optional JSON file seeding the session state")
	generateCmd.Flags().Bool("quit", true, "Terminate when generation settles")
	generateCmd.Flags().Bool("clean-db", true, "Discard a pre-existing generation database")
	generateCmd.Flags().Bool("log", true, "Emit progress logging")
	_ = generateCmd.MarkFlagRequired("out")
	_ = generateCmd.MarkFlagRequired("templates")
	_ = generateCmd.MarkFlagRequired("metadata")
}
