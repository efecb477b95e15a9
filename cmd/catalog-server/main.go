package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/api"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
)

func main() {
	_ = godotenv.Load()

	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	logger := serverConfig.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	store, cleanup, err := serverConfig.BuildStore(context.Background())
	if err != nil {
		logger.Error("Failed to build store", "store_type", serverConfig.StoreType, "err", err)
		os.Exit(1)
	}
	defer cleanup()

	httpServer := newHTTPServer(serverConfig, store)

	go func() {
		logger.Info("Catalog server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"store_type", serverConfig.StoreType,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
		return
	}

	logger.Info("Server exiting")
}

func newHTTPServer(cfg *config.ServerConfig, store catalog.Store) *http.Server {
	return &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: api.NewRouter(store, api.RouterConfig{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
			AccessLog:      true,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
