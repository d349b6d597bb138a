package main

import (
	"context"
	"fmt"
	"time"

	"comprobantes/internal/cache"
	"comprobantes/internal/config"
	"comprobantes/internal/database"
	"comprobantes/internal/database/migrations"
	"comprobantes/internal/db"
	"comprobantes/internal/logger"
	"comprobantes/internal/repositories"
	"comprobantes/internal/store"
	"comprobantes/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// app is everything a command needs once configuration has been applied
type app struct {
	cfg   *config.Config
	store *store.Memory
	pool  *pgxpool.Pool
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	cache.Close()
}

// bootstrap loads configuration, sets up logging and loads the store
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Setup(logger.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	log := logger.WithComponent("bootstrap")

	if err := timeutil.SetLocation(cfg.UI.Location); err != nil {
		log.Warn().Err(err).Str("location", cfg.UI.Location).Msg("Unknown location, keeping default location")
	}

	a := &app{cfg: cfg}
	src, err := a.source(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.store, err = store.Load(ctx, src)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load comprobantes from %s: %w", cfg.Store.Source, err)
	}
	log.Info().
		Str("source", cfg.Store.Source).
		Int("records", a.store.Len()).
		Str("fingerprint", a.store.Fingerprint()).
		Msg("Comprobantes loaded")

	if cfg.Redis.Addr != "" {
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, ttl); err != nil {
			log.Warn().Err(err).Msg("Redis not available, running without cache")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache enabled")
		}
	}

	return a, nil
}

func (a *app) source(ctx context.Context) (store.Source, error) {
	cfg := a.cfg
	switch cfg.Store.Source {
	case "", config.SourceEmbedded:
		return store.Embedded{}, nil

	case config.SourceFile:
		if cfg.Store.File == "" {
			return nil, fmt.Errorf("store.file is required for the file source")
		}
		return store.File{Path: cfg.Store.File}, nil

	case config.SourcePostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		if err := database.NewMigratorWithFS(pool, migrations.FS, ".").RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return repositories.NewComprobanteRepository(pool), nil

	case config.SourceS3:
		return store.S3{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Key:       cfg.S3.Key,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		}, nil
	}
	return nil, fmt.Errorf("unknown store source %q", cfg.Store.Source)
}
