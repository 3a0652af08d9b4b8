// Command wikisearch-server runs the HTTP query surface: it loads
// configuration, builds the service registry, and serves GET /,
// /healthz, /autocomplete, and /search over gin.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/DanielHalachev/WikiSearch/bootstrap"
	"github.com/DanielHalachev/WikiSearch/config"
	"github.com/DanielHalachev/WikiSearch/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	root := &cobra.Command{
		Use:   "wikisearch-server",
		Short: "Serve WikiSearch's query HTTP surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	root.Flags().StringVar(&configFile, "config", "", "path to a TOML config file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configFile string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := mustLoadConfig(logger, configFile)
	reg := mustBuildRegistry(logger, cfg)
	defer func() {
		if err := reg.Close(); err != nil {
			logger.Error("error closing service registry", "error", err)
		}
	}()

	var ready atomic.Bool
	ready.Store(true)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	handlers := server.NewHandlers(reg.Orchestrator, reg.Autocompleter, ready.Load)
	server.RegisterRoutes(engine, handlers)

	httpServer := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-sigCh:
		logger.Info("shutting down")
		ready.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("error shutting down http server", "error", err)
		}
		<-errCh
	}
	return nil
}

// mustLoadConfig and mustBuildRegistry handle the fatal startup errors:
// every one funnels through one of these two, is logged, and exits the
// process rather than panicking anywhere in library code.
func mustLoadConfig(logger *slog.Logger, configFile string) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func mustBuildRegistry(logger *slog.Logger, cfg config.Config) *bootstrap.Registry {
	reg, err := bootstrap.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build service registry", "error", err)
		os.Exit(1)
	}
	return reg
}
