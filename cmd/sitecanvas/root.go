package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/internal/config"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/spf13/cobra"
)

// flushTimeout bounds the wait for pending document writes on exit.
const flushTimeout = 5 * time.Second

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg    *config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "sitecanvas",
	Short: "SiteCanvas builds single-page business websites",
	Long: `SiteCanvas keeps a page as a tree of elements and edits it through
undoable commands. Documents persist to a file, sqlite or redis store and can
be published as standalone HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger, err := cli.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		app.cfg = cfg
		app.logger = logger
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("store", "", "State store backend: memory, file, redis or sqlite")
	rootCmd.PersistentFlags().String("path", "", "Directory of the file store or database file of sqlite")
	rootCmd.PersistentFlags().StringP("key", "k", "", "Document key")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// applyFlags lets explicit flags override the file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("store") {
		v, _ := flags.GetString("store")
		cfg.Store.Backend = config.Backend(v)
	}
	if flags.Changed("path") {
		cfg.Store.Path, _ = flags.GetString("path")
	}
	if flags.Changed("key") {
		cfg.Store.Key, _ = flags.GetString("key")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
}

// openSite opens the configured backend and the document service on it.
// Callers must call the returned close function, which waits for pending
// document writes before closing the backend.
func openSite(hooks domain.LifecycleHooks) (*sitecanvas.Site, func(), error) {
	backend, err := cli.OpenBackend(app.cfg, app.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	site, err := cli.NewSite(app.cfg, backend, app.logger, hooks)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	closeSite := func() {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := site.Close(ctx); err != nil {
			app.logger.Warn("pending document writes were not flushed", "err", err)
		}
		backend.Close()
	}
	return site, closeSite, nil
}
