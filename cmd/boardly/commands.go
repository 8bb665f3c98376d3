package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/arnold/boardly-api/internal/config"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/logging"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/routes"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boardly",
		Short:         "Boardly Kanban API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := setup(cfg); err != nil {
				return err
			}
			defer logging.Flush()
			defer database.Close()

			if !skipMigrate {
				if err := database.Migrate(); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run migrations on startup")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := setup(cfg); err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logrus.Info("migrations applied")
			return nil
		},
	}
}

func setup(cfg *config.Config) error {
	if err := logging.Setup(cfg); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	auth, err := middleware.NewAuthConfig(cfg)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	storage := middleware.NewRateLimitStorage(cfg)
	if redisStorage, ok := storage.(*middleware.RedisStorage); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisStorage.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer redisStorage.Close()
	}

	app := routes.NewApp()
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
	}))
	app.Use(middleware.RequestLogger())
	app.Static("/uploads", cfg.UploadsDir)

	routes.Setup(app, cfg, auth, storage)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
