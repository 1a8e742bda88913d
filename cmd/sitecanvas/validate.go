package main

import (
	"fmt"

	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/internal/validator"
	"github.com/aretw0/sitecanvas/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [library dir]",
	Short: "Check documents and templates for structural faults",
	Long: `Walks the element tree of the stored document, or of every template in a
library directory, and reports unknown types, missing or repeated ids and leaves
that carry children.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			lib, err := loam.Open(args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to open library: %w", err)
			}
			if err := validator.ValidateLibrary(cmd.Context(), lib); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(out, "Templates are valid! ✅")
			return nil
		}

		backend, err := cli.OpenBackend(app.cfg, app.logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		key := app.cfg.Store.Key
		state, err := backend.Store.Load(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("error loading document '%s': %w", key, err)
		}
		if err := validator.ValidateDocument(state.Document); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(out, "Document '%s' is valid! ✅\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
