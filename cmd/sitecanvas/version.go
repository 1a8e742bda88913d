package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/sitecanvas"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sitecanvas",
	// No config needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sitecanvas version %s\n", strings.TrimSpace(sitecanvas.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
