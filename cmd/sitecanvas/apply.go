package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <command> [json payload]",
	Short: "Apply one editor command to the document",
	Long: fmt.Sprintf(`Applies a command and persists the result.

  sitecanvas apply select '{"id":"e3"}'
  sitecanvas apply undo

Commands: %s`, strings.Join(editor.Names, ", ")),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload map[string]any
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &payload); err != nil {
				return fmt.Errorf("payload must be a JSON object: %w", err)
			}
		}

		site, closeSite, err := openSite(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeSite()

		key := app.cfg.Store.Key
		state, diff, err := site.Apply(cmd.Context(), key, args[0], payload)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		}
		cli.PrintSystemMessage(out, "%s: %s.", args[0], cli.DescribeDiff(diff))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().Bool("json", false, "Print the resulting state as JSON")
}
