package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/config"
	"github.com/Amreshcodee/itemhub/internal/server"
	"github.com/Amreshcodee/itemhub/internal/serverstore"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			logger, err := initLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			return runServer(cfg, logger)
		},
	}
}

func runServer(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.String("database_path", cfg.DatabasePath),
	)

	items, users, closeStore, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := server.New(cfg, logger, items, users)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// openStores picks the storage backend: SQLite when a database path is
// configured, in-memory otherwise.
func openStores(cfg *config.Config, logger *zap.Logger) (serverstore.ItemStore, serverstore.UserStore, func(), error) {
	if cfg.DatabasePath == "" {
		logger.Info("using in-memory store")
		mem := serverstore.NewMemoryStore()
		return mem, mem, func() {}, nil
	}

	logger.Info("using sqlite store", zap.String("path", cfg.DatabasePath))
	db, err := serverstore.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	return db, db, func() { _ = db.Close() }, nil
}
