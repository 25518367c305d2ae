package main

import (
	"fmt"

	"github.com/weftworks/genloom"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of genloom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("genloom version %s\n", genloom.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
