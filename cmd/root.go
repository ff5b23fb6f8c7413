package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadapter "factory/internal/adapters/in/http"
	"factory/internal/adapters/out/postgres"
)

const shutdownTimeout = 10 * time.Second

// Execute runs the factory command line.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "factory",
		Short:         "Order fulfillment orchestration for the factory floor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(&envFile))
	root.AddCommand(newMigrateCmd(&envFile))
	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reconciliation jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

func newMigrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := postgres.Open(cfg.DB.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			return postgres.Migrate(cmd.Context(), db, logger)
		},
	}
}

func bootstrap(envFile string) (Config, *zap.Logger, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return Config{}, nil, err
	}
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, logger, nil
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	root, err := NewCompositionRoot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := root.Close(); err != nil {
			logger.Warn("close resources", zap.Error(err))
		}
	}()

	e := httpadapter.NewEcho(logger, cfg.LogLevel)
	httpadapter.Register(e, root.NewServer())

	if cfg.Jobs.Enabled {
		jobManager := root.NewJobManager()
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := net.JoinHostPort("0.0.0.0", cfg.HTTPPort)
		logger.Info("http server listening", zap.String("addr", addr), zap.String("store", cfg.Store))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
