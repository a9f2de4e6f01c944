package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	apiserver "sysprobe/internal/api"
)

const shutdownTimeout = 5 * time.Second

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the probes until interrupted",
		Long: `Run every configured probe on its own interval until SIGINT or SIGTERM.

The HTTP API is served when --listen is set and requires --api-key.
The snapshot is mirrored to SQLite when --db-path is set.

Example:
  sysprobe run
  sysprobe run -c probes.yaml --listen 127.0.0.1:8080 --api-key secret`,
		RunE: runProbes,
	}

	f := cmd.Flags()
	f.StringVar(&flags.Listen, "listen", "", "API listen address, the API is disabled if empty")
	f.StringVar(&flags.APIKey, "api-key", "", "API key required in the X-API-Key header")
	f.StringVar(&flags.DBPath, "db-path", "", "SQLite file mirroring the snapshot")
	f.BoolVar(&flags.DevMode, "dev", false, "Expose runtime profiles under /debug")

	return cmd
}

func runProbes(cmd *cobra.Command, args []string) error {
	cfg, appLogger, err := loadRuntimeConfig(true)
	if err != nil {
		return err
	}

	appLogger.Info("Starting sysprobe")

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng, err := startEngine(sigCtx, appLogger, cfg)
	if err != nil {
		appLogger.Error("Failed to start probes", "err", err)
		return err
	}

	var apiServer *apiserver.Server
	serverErrChan := make(chan error, 1)
	if cfg.Listen != "" {
		apiServer, err = apiserver.NewServer(appLogger, cfg, eng.loader, eng.snapshot, eng.service)
		if err != nil {
			eng.stop(context.Background())
			return fmt.Errorf("failed to create API server: %w", err)
		}

		go func() {
			if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrChan <- fmt.Errorf("API server error: %w", err)
			}
		}()
	}

	appLogger.Info("sysprobe started, waiting for shutdown signal", "probes", eng.service.Count())

	var runErr error
	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received, starting graceful shutdown")
	case runErr = <-serverErrChan:
		appLogger.Error("Server error received", "err", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if apiServer != nil {
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("API server shutdown error: %w", err))
		}
	}

	if err := eng.stop(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("probe shutdown error: %w", err))
	}

	if runErr == nil {
		appLogger.Info("Graceful shutdown completed")
	}
	return runErr
}
