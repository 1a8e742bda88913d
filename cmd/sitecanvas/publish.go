package main

import (
	"fmt"
	"os"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/render"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the document as a standalone HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		output, _ := cmd.Flags().GetString("output")

		site, closeSite, err := openSite(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeSite()

		key := app.cfg.Store.Key
		page, err := site.Publish(cmd.Context(), key, domain.ViewMode(mode))
		if cli.IsNotFound(err) {
			return fmt.Errorf("no document stored under %q; create one with 'sitecanvas new'", key)
		}
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(page)
			return err
		}
		if err := os.WriteFile(output, page, 0o644); err != nil {
			return fmt.Errorf("failed to write page: %w", err)
		}

		state, err := site.Open(cmd.Context(), key)
		if err != nil {
			return err
		}
		name := state.Document.Name
		if state.UserConfig != nil {
			name = state.UserConfig.BusinessName
		}
		cli.PrintSystemMessage(cmd.ErrOrStderr(), "Wrote %s (%d bytes). Site address: %s", output, len(page), render.PublishURL(name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("mode", "", "View mode: desktop, tablet or mobile (defaults to the document's)")
	publishCmd.Flags().StringP("output", "o", "", "Write the page to a file instead of stdout")
}
