// cmd/mixer-api/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andrecollier/website-builder-sub004/internal/api"
	"github.com/andrecollier/website-builder-sub004/internal/common/config"
	"github.com/andrecollier/website-builder-sub004/internal/common/database"
	"github.com/andrecollier/website-builder-sub004/internal/common/logger"
	"github.com/andrecollier/website-builder-sub004/internal/common/observability"
	"github.com/andrecollier/website-builder-sub004/internal/harmony"
	"github.com/andrecollier/website-builder-sub004/internal/store"
	"github.com/andrecollier/website-builder-sub004/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mixer API...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("mixer-api")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Section registry ---
	var sections *registry.SectionRegistry
	if cfg.Registry.Path != "" {
		sections, err = registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			// Missing registry only disables section-type validation.
			zapLog.Warn("section registry unavailable",
				zap.String("path", cfg.Registry.Path),
				zap.Error(err),
			)
			sections = nil
		} else {
			zapLog.Info("section registry loaded",
				zap.String("path", cfg.Registry.Path),
				zap.Int("sections", len(sections.Sections)),
			)
		}
	}

	refStore := store.New(rdb, time.Duration(cfg.Session.TTL)*time.Second, log)
	checker := harmony.New(harmony.ConfigFromSettings(cfg.Harmony))
	server := api.NewServer(refStore, checker, sections, obs, log)

	mux := http.NewServeMux()
	server.Register(mux)
	api.RegisterProfiler(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("Mixer API stopped")
}
