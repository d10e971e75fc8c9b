// cmd/intake-server/main.go
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

	"fostercare-intake/internal/common/config"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/notify"
	"fostercare-intake/internal/platform/cache"
	"fostercare-intake/internal/platform/rest"
	"fostercare-intake/internal/server"
	"fostercare-intake/internal/ui"
	"fostercare-intake/pkg/registry"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake server...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init record cache with retry ---
	store := cache.NewStore(cfg.Redis, cfg.Cache)
	err = retryWithBackoff(func() error {
		return store.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer store.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init remote record service client ---
	records := rest.NewClient(cfg.DataService, store, log)

	// --- Load the record schema registry ---
	schemas, err := registry.Load()
	if err != nil {
		zapLog.Fatal("schema registry load failed", zap.Error(err))
	}
	zapLog.Info("Schema registry loaded",
		zap.String("version", schemas.Version()),
		zap.Strings("records", schemas.Names()),
	)

	// --- Init agency notifier ---
	var notifier *notify.AgencyNotifier
	if cfg.Notifications.Enabled {
		notifier, err = notify.NewAgencyNotifier(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notifier initialization failed", zap.Error(err))
		}
		zapLog.Info("Agency notifier initialized", zap.String("region", cfg.Notifications.Region))
	} else {
		zapLog.Info("Notifications disabled")
	}

	sessions := server.NewSessionStore(cfg.Server.SessionTTL, log)

	router := server.NewRouter(server.Deps{
		Config:    cfg,
		Log:       log,
		Records:   records,
		Sessions:  sessions,
		Schemas:   schemas,
		Notifier:  notifier,
		Presenter: ui.NewLogPresenter(log, true),
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	// Session sweeper: expired drafts are dropped, not persisted.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if swept := sessions.Sweep(); swept > 0 {
					zapLog.Info("expired sessions swept", zap.Int("count", swept))
				}
			}
		}
	}()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutdown signal received, draining...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Intake server stopped")
}
