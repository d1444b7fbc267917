package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/feedprint/internal/api"
	"github.com/rshade/feedprint/internal/config"
)

// NewServeCmd creates the "serve" command, which runs the HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve footprint computations over HTTP",
		Long: `Starts the HTTP API. The dataset is loaded once at startup.

Endpoints: /healthz, /readyz, /metrics, /v1/ingredients, /v1/scenarios,
/v1/footprint (GET and POST), /v1/national, /v1/compare, /v1/origins,
/v1/pollution.

SIGINT or SIGTERM drains connections within server.shutdown_timeout.`,
		Example: `  # Listen on the configured address
  feedprint serve

  # Listen on a specific port
  feedprint serve --addr :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address (overrides server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	srv, err := api.New(api.Options{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dataset:         ds,
		Clock:           clock,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Ctx(cmd.Context()).Msg("shutdown requested")
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
