package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
	"github.com/tendant/adyax-ws/pkg/adyaxws/api"
	"github.com/tendant/adyax-ws/pkg/adyaxws/config"
	"github.com/tendant/chi-demo/app"
)

// BasePath is where the node web service is mounted.
const BasePath = "/adyax_ws"

func main() {
	configFile := flag.String("config", "", "optional YAML, JSON or TOML config file")
	flag.Parse()

	opts := []config.Option{config.WithEnv()}
	if *configFile != "" {
		opts = append(opts, config.WithFile(*configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		slog.Error("Failed to build logger", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx := context.Background()
	svc, cleanup, err := cfg.BuildService(ctx, adyaxws.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           newRouter(svc, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Adyax web service starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"database", cfg.DatabaseType,
			"node_types", cfg.NodeTypes,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
	}

	logger.Info("Server exiting")
}

func newRouter(svc adyaxws.Service, cfg *config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	app.RoutesHealthz(r)
	app.RoutesHealthzReady(r)

	handler := api.NewNodeHandler(svc, logger)
	chain := api.DefaultMiddleware(logger, cfg.MaxBodyBytes)
	r.Mount(BasePath, chain.Wrap(handler.Routes()))

	return r
}
