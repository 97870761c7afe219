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

	httpadapter "brandhub/internal/adapter/http"
	"brandhub/internal/adapter/memory"
	"brandhub/internal/adapter/postgres"
	"brandhub/internal/adapter/rediscache"
	"brandhub/internal/adapter/schema"
	"brandhub/internal/adapter/usecase"
	"brandhub/internal/config"
	"brandhub/internal/core/port"
	"brandhub/internal/db"
)

// main is the entry point of the brandhub service. It loads configuration,
// selects the campaign storage, optionally runs database migrations and
// seeding, connects the view cache, then starts the HTTP server. On
// receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout, slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var repo port.CampaignRepository
	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.NewCampaignRepository()
		if err = db.SeedMemory(ctx, mem); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return
		}
		logger.Warn("using in-memory storage, changes are lost on restart")
		repo = mem
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return
			}
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql, logger)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()

		if cfg.Psql.Seed {
			if err = db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
				return
			}
			logger.Info("demo data seeded")
		}
		repo = postgres.NewCampaignRepository(pool)
	}

	var views port.ViewCache = rediscache.Noop{}
	if cfg.Redis.Enabled() {
		client, err := db.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			return
		}
		defer client.Close()
		views = rediscache.New(client, cfg.Redis.TTL, logger)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		logger.Error("schema error", slog.Any("error", err))
		return
	}
	svc := usecase.NewCampaignUseCase(repo, validator, views)

	handler := httpadapter.NewHandler(svc, views, httpadapter.NewSessions(cfg.Auth), cfg.HTTP.AllowedOrigins, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	case <-ctx.Done():
		exitCode = 0
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
}
