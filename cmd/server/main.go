package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/finanzas/internal/auth"
	"github.com/mmynk/finanzas/internal/config"
	"github.com/mmynk/finanzas/internal/metrics"
	"github.com/mmynk/finanzas/internal/service"
	"github.com/mmynk/finanzas/internal/storage"
	"github.com/mmynk/finanzas/internal/storage/jsonfile"
	"github.com/mmynk/finanzas/internal/storage/sqlite"
	"github.com/mmynk/finanzas/pkg/logging"
)

func main() {
	// A missing .env is fine; the environment may already be set
	envErr := godotenv.Load()

	logger := logging.Setup()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("Failed to load .env file", "error", envErr)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.DataBackend == config.BackendSQLite {
		db, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	dir, err := jsonfile.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	backend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	store := storage.NewRecordStore(backend)
	defer store.Close()
	logger.Info("Storage initialized", "backend", cfg.DataBackend, "data_dir", cfg.DataDir, "database", cfg.SQLiteDBPath)

	// Tokens issued before a restart stop validating after it
	jwtManager, err := auth.NewRandomJWTManager(cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}

	handler := service.NewHandler(service.Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticatorWithCost(store, cfg.BcryptCost),
		JWTManager:    jwtManager,
		Metrics:       metrics.New(),
		Logger:        logger,
		CORSOrigin:    cfg.CORSAllowedOrigin,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
