package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/internal/presentation/graph"
	"github.com/aretw0/sitecanvas/internal/presentation/tui"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/render"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the document",
	Long: `Prints the stored document as an element outline, Markdown, a Mermaid
diagram or raw JSON. With --watch it reprints whenever the stored state changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		formatter, err := stateFormatter(format)
		if err != nil {
			return err
		}

		backend, err := cli.OpenBackend(app.cfg, app.logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		key := app.cfg.Store.Key
		out := cmd.OutOrStdout()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()
			return cli.RunWatch(sigCtx, backend.Store, cli.WatchOptions{
				Key:    key,
				Out:    out,
				Logger: app.logger,
				Format: formatter,
			})
		}

		state, err := backend.Store.Load(cmd.Context(), key)
		if cli.IsNotFound(err) {
			return fmt.Errorf("no document stored under %q; create one with 'sitecanvas new'", key)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter(state))
		return nil
	},
}

func stateFormatter(format string) (func(*domain.State) string, error) {
	switch format {
	case "outline":
		return func(st *domain.State) string {
			return render.Outline(st.Document, st.Selected())
		}, nil
	case "markdown":
		renderMarkdown := tui.NewRenderer()
		return func(st *domain.State) string {
			md := render.Markdown(st.Document)
			if out, err := renderMarkdown(md); err == nil {
				return out
			}
			return md
		}, nil
	case "mermaid":
		return func(st *domain.State) string {
			return graph.GenerateMermaid(st.Document, &graph.Overlay{Selected: st.Selected()})
		}, nil
	case "json":
		return func(st *domain.State) string {
			data, _ := json.MarshalIndent(st, "", "  ")
			return string(data) + "\n"
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q: use outline, markdown, mermaid or json", format)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", "outline", "Output format: outline, markdown, mermaid or json")
	showCmd.Flags().BoolP("watch", "w", false, "Reprint on every stored change")
}
