package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored documents",
	Long:  `List, inspect, and remove the documents held by the configured store.`,
}

var docsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := cli.OpenBackend(app.cfg, app.logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		keys, err := backend.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing documents: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(keys) == 0 {
			fmt.Fprintln(out, "No documents found.")
			return nil
		}
		fmt.Fprintln(out, "Documents:")
		for _, k := range keys {
			fmt.Fprintln(out, "- "+k)
		}
		return nil
	},
}

var docsInspectCmd = &cobra.Command{
	Use:   "inspect <key>",
	Short: "Print the stored state of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := cli.OpenBackend(app.cfg, app.logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		state, err := backend.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading document '%s': %w", args[0], err)
		}

		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling state: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Remove one or more documents",
	Args: func(cmd *cobra.Command, args []string) error {
		if all, _ := cmd.Flags().GetBool("all"); all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := cli.OpenBackend(app.cfg, app.logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		keys := args
		if all, _ := cmd.Flags().GetBool("all"); all {
			if keys, err = backend.Store.List(cmd.Context()); err != nil {
				return err
			}
		}

		var failed int
		for _, k := range keys {
			if err := backend.Store.Delete(cmd.Context(), k); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", k, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed document '%s'\n", k)
		}
		if failed > 0 {
			return fmt.Errorf("%d document(s) could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsLsCmd)
	docsCmd.AddCommand(docsInspectCmd)
	docsCmd.AddCommand(docsRmCmd)
	docsRmCmd.Flags().Bool("all", false, "Remove every stored document")
}
