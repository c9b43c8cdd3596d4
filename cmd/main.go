// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/config"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/database"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/handler"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/logger"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/repository"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/repository/memstore"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/seed"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/service"
	"go.uber.org/zap"
)

// classStore is what main needs from a class store: reads for the service
// and writes for seeding.
type classStore interface {
	service.ClassStore
	seed.ClassWriter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	zl.Info("starting booking service",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.Bool("env_file", cfg.EnvFileLoaded),
	)

	// ── 1. Storage ────────────────────────────────────────────────────────
	var (
		classes  classStore
		bookings service.BookingStore
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memstore.New()
		classes, bookings = store, store
	default:
		pool, err := database.NewPool(ctx, cfg.DB.ConnString(), zl)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		zl.Info("connected to PostgreSQL")

		if err := database.Migrate(ctx, pool, zl); err != nil {
			return err
		}
		classes = repository.NewClassRepository(pool)
		bookings = repository.NewBookingRepository(pool)
	}

	if cfg.SeedSampleData {
		if _, err := seed.Run(ctx, classes, time.Now(), cfg.DisplayTimezone, zl); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.NewBookingService(classes, bookings, cfg.DisplayTimezone, zl)
	h := handler.NewBookingHandler(svc, zl)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(h, zl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		zl.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zl.Info("server stopped")
	return nil
}
