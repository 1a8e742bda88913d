package main

import (
	"context"
	"os"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the document interactively",
	Long: `Opens a prompt that applies editor commands, drops palette elements and
presses shortcuts against the stored document. Type 'help' inside for the list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, closeSite, err := openSite(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeSite()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		quiet, _ := cmd.Flags().GetBool("quiet")
		err = cli.RunEdit(sigCtx, site, cli.EditOptions{
			Key:    app.cfg.Store.Key,
			In:     os.Stdin,
			Out:    cmd.OutOrStdout(),
			Logger: app.logger,
			Quiet:  quiet || !cli.IsTerminal(os.Stdout),
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolP("quiet", "q", false, "Hide the banner and prompt (implied when stdout is not a terminal)")
}
