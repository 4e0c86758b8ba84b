package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumafab/agpattern/internal/api"
	"github.com/lumafab/agpattern/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the pattern generation HTTP API.

Backends for the cache, artifact store, and job store are configured
with a TOML file (--config); without one the server uses the file
cache, a local artifact directory, and in-memory job tracking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	artifactCache, err := cfg.Cache.buildCache(ctx)
	if err != nil {
		return err
	}
	store, err := cfg.Storage.buildStore()
	if err != nil {
		return err
	}
	defer store.Close()

	jobStore, err := cfg.Jobs.buildJobs(ctx)
	if err != nil {
		return err
	}
	defer jobStore.Close(context.Background())

	runner := pipeline.NewRunner(artifactCache, cfg.Cache.buildKeyer(), c.Logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(runner, store, jobStore, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
