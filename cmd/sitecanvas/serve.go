package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/internal/cli"
	"github.com/aretw0/sitecanvas/internal/telemetry"
	httpAdapter "github.com/aretw0/sitecanvas/pkg/adapters/http"
	"github.com/aretw0/sitecanvas/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP document server",
	Long: `Serves every document of the configured store over a JSON API: apply
commands, stream state diffs over SSE, publish HTML and expose Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := app.cfg, app.logger
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetString("port")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		shutdownTracing, err := telemetry.Setup(sigCtx)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer shutdownTracing(context.Background())

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(registry)

		site, closeSite, err := openSite(metrics.Hooks())
		if err != nil {
			return err
		}
		defer closeSite()

		srv := &http.Server{
			Addr: ":" + cfg.HTTP.Port,
			Handler: httpAdapter.NewHandler(&meteredSite{Site: site, metrics: metrics},
				httpAdapter.WithLogger(logger),
				httpAdapter.WithAllowedOrigins(cfg.HTTP.Origins...),
				httpAdapter.WithGatherer(registry),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr, "backend", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("starting shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

// meteredSite drops the per-document series of deleted documents.
type meteredSite struct {
	*sitecanvas.Site
	metrics *observability.Metrics
}

func (s *meteredSite) Delete(ctx context.Context, key string) error {
	if err := s.Site.Delete(ctx, key); err != nil {
		return err
	}
	s.metrics.Forget(key)
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides http.port)")
}
