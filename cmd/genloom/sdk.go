package main

import (
	"os"

	"github.com/weftworks/genloom/internal/cli"
	"github.com/spf13/cobra"
)

var sdkRegenCmd = &cobra.Command{
	Use:        "sdk-regen",
	Short:      "Regenerate the legacy SDK manifest (deprecated)",
	Deprecated: "use 'genloom generate' with a template package instead",
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		out, _ := cmd.Flags().GetString("out")
		meta, _ := cmd.Flags().GetString("metadata")
		quit, _ := cmd.Flags().GetBool("quit")
		cleanDB, _ := cmd.Flags().GetBool("clean-db")

		os.Exit(cli.RunSDKRegen(cli.SDKOptions{
			OutputDir:    out,
			MetadataPath: meta,
			DataDir:      dataDir,
			Quit:         quit,
			CleanDB:      cleanDB,
		}))
	},
}

func init() {
	rootCmd.AddCommand(sdkRegenCmd)
	sdkRegenCmd.Flags().StringP("out", "o", "", "Output directory for the regenerated SDK")
	sdkRegenCmd.Flags().StringP("metadata", "m", "", "Domain metadata XML file (built-in defaults when omitted)")
	sdkRegenCmd.Flags().Bool("quit", true, "Terminate when regeneration settles")
	sdkRegenCmd.Flags().Bool("clean-db", true, "Discard a pre-existing sdk-regen database")
	_ = sdkRegenCmd.MarkFlagRequired("out")
}
