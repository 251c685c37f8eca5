package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/logging"
	"github.com/iwvelando/loan-calculator/internal/server"
	"github.com/iwvelando/loan-calculator/internal/version"
	"github.com/iwvelando/loan-calculator/pkg/analytics"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"go.uber.org/zap"
)

// trackers builds the click trackers for cfg. Events are always logged;
// Redis adds per-day counters, which also back /api/stats.
func trackers(cfg *server.Config, logger *zap.Logger) ([]server.Option, func()) {
	logTracker := analytics.NewLogTracker(logger)
	if cfg.Analytics.RedisAddr == "" {
		return []server.Option{server.WithTracker(logTracker)}, func() {}
	}

	client := analytics.NewRedisClient(cfg.Analytics.RedisAddr)
	redisTracker := analytics.NewRedisTracker(client, cfg.Analytics.KeyPrefix)
	opts := []server.Option{
		server.WithTracker(analytics.Multi{logTracker, redisTracker}),
		server.WithCounter(redisTracker),
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
	return opts, closeFn
}

// serve runs srv until it fails or a signal arrives on quit, then shuts it
// down gracefully. Only a listen failure is returned.
func serve(srv *http.Server, quit <-chan os.Signal, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to serve on %s: %w", srv.Addr, err)
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}
	if addr := os.Getenv(constants.EnvPrefix + "_REDIS_ADDR"); addr != "" {
		cfg.Analytics.RedisAddr = addr
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts, closeTrackers := trackers(cfg, logger)
	defer closeTrackers()

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, cfg, opts...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("share_path", cfg.SharePath),
		zap.Bool("redis_analytics", cfg.Analytics.RedisAddr != ""),
		zap.String("version", version.Get().String()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, quit, logger); err != nil {
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		// os.Exit skips deferred calls.
		closeTrackers()
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("server exited", zap.String("op", "main"))
}
