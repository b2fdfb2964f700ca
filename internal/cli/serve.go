package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgview/internal/httpapi"
	"github.com/matzehuels/orgview/pkg/config"
	"github.com/matzehuels/orgview/pkg/pipeline"
)

type serveOpts struct {
	addr    string
	noCache bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the org chart HTTP API",
		Long: `Start an HTTP server that accepts roster CSV uploads and returns
validated forests, layouts and rendered artifacts as JSON or SVG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout and artifact cache")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	store, err := openCache(ctx, opts.noCache)
	if err != nil {
		printWarning("Cache unavailable, serving uncached: %v", err)
		store = nil
	}
	runner := pipeline.NewRunner(store, nil, logger)
	defer runner.Close()

	handler := httpapi.NewHandler(logger, runner)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
