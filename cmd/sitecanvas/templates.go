package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available page templates",
	Long: `Lists the templates of the library directory (templates.dir or --library).
Without a library it lists the built-in industry pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("library") {
			app.cfg.Templates.Dir, _ = cmd.Flags().GetString("library")
		}

		site, closeSite, err := openSite(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeSite()

		docs, err := site.Templates(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tELEMENTS")
		for _, d := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Industry, tree.Count(d.Elements))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().String("library", "", "Template library directory (overrides templates.dir)")
}
