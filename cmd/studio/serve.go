// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dublab/studio/internal/api"
	"github.com/dublab/studio/internal/core/artist"
	"github.com/dublab/studio/internal/core/category"
	"github.com/dublab/studio/internal/core/media"
	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/config"
	"github.com/dublab/studio/internal/platform/constants"
	"github.com/dublab/studio/internal/platform/migration"
	"github.com/dublab/studio/internal/platform/objectstore"
	pgstore "github.com/dublab/studio/internal/platform/postgres"
	redisstore "github.com/dublab/studio/internal/platform/redis"
	"github.com/dublab/studio/internal/platform/sec"
	"github.com/dublab/studio/internal/users/account"
	"github.com/dublab/studio/pkg/imageurl"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, opts.logger(cmd, cfg.Debug), skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
	return cmd
}

/*
serve runs the API until ctx is cancelled.

Startup sequence:
 1. Connect to PostgreSQL and Redis.
 2. Apply migrations (idempotent).
 3. Load the token verifier and the object store.
 4. Wire handlers and serve with graceful shutdown.
*/
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, skipMigrations bool) error {
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	// ── 1. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 2. Migrations ─────────────────────────────────────────────────────
	if !skipMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return err
		}
	}

	// ── 3. Tokens & Storage ───────────────────────────────────────────────
	verifier, err := sec.NewTokenService("", cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize token verifier: %w", err)
	}

	store, err := objectstore.NewS3(startupCtx, objectstore.S3Options{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}, log)
	if err != nil {
		return err
	}

	images := imageurl.New(cfg.ImageCDNHost, cfg.ImageCloudName)

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	formOptionsCache := project.NewFormOptionsCache(rdb, cfg.FormOptionsTTL)

	categoryService := category.NewService(category.NewPostgresRepository(pool), formOptionsCache, log)
	artistService := artist.NewService(artist.NewPostgresRepository(pool), formOptionsCache, images, log)
	projectService := project.NewService(project.NewProjectRepository(pool), formOptionsCache, store, images, log)
	mediaService := media.NewService(store, images, cfg.MaxUploadBytes, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		CheckStorage:  store.Ping,
	}, log)

	server := api.NewServer(ctx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Category:  category.NewHandler(categoryService),
		Artist:    artist.NewHandler(artistService),
		Project:   project.NewHandler(projectService),
		Media:     media.NewHandler(mediaService),
		Account:   account.NewHandler(accountService),
	})

	// ── 5. Serve & Graceful Shutdown ──────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped cleanly")
	return nil
}
