package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/stickies"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stickies",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stickies version %s\n", strings.TrimSpace(stickies.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
