package main

import (
	"fmt"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a document from a business profile or a template",
	Long: `Registers the business profile and generates the industry page for it,
or replaces the document with a template from a library directory.

  sitecanvas new --name "Luigi's" --industry restaurant --color "#B91C1C"
  sitecanvas new --template launch --library ./templates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		key := app.cfg.Store.Key
		templateID, _ := flags.GetString("template")
		if flags.Changed("library") {
			app.cfg.Templates.Dir, _ = flags.GetString("library")
		}

		site, backend, err := openSite(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer backend.Close()
		ctx := cmd.Context()

		if fresh, _ := flags.GetBool("fresh"); fresh {
			if err := site.Delete(ctx, key); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if templateID != "" {
			state, _, err := site.UseTemplate(ctx, key, templateID)
			if err != nil {
				return err
			}
			cli.PrintSystemMessage(out, "Document '%s' now uses template '%s' (%d elements).", key, templateID, len(state.Document.Elements))
			return nil
		}

		name, _ := flags.GetString("name")
		industry, _ := flags.GetString("industry")
		color, _ := flags.GetString("color")
		if name == "" {
			return fmt.Errorf("--name is required unless --template is given")
		}

		cmds := []editor.Command{
			editor.SetUserConfig{Config: domain.UserConfig{
				BusinessName: name,
				Industry:     domain.Industry(industry),
				ColorTheme:   color,
			}},
			editor.GenerateFromIndustry{},
			editor.SetStage{Stage: domain.StagePreview},
		}
		var state *domain.State
		for _, c := range cmds {
			if state, _, err = site.Dispatch(ctx, key, c); err != nil {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}
		}
		cli.PrintSystemMessage(out, "Generated '%s' for %s (%d elements).", state.Document.Name, industry, len(state.Document.Elements))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("name", "", "Business name")
	newCmd.Flags().String("industry", string(domain.IndustryOther), "Business industry, e.g. restaurant, retail, professional")
	newCmd.Flags().String("color", element.AccentColor, "Accent color")
	newCmd.Flags().String("template", "", "Template id to apply instead of generating")
	newCmd.Flags().String("library", "", "Template library directory (overrides templates.dir)")
	newCmd.Flags().Bool("fresh", false, "Discard the stored document first")
}
