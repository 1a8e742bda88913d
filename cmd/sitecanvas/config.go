package main

import (
	"fmt"
	"os"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the configuration in effect (defaults, file, SITECANVAS_* environment
and flags) to --config, sitecanvas.yaml by default. Refuses to overwrite an
existing file unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
		if err := app.cfg.Save(path); err != nil {
			return err
		}
		cli.PrintSystemMessage(cmd.OutOrStdout(), "Wrote %s (store: %s).", path, app.cfg.Store.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
