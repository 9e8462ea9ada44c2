package repository

import (
	"context"
	"fmt"
	"time"

	"dating-app-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	maxConns        = 25
	minConns        = 2
	maxConnLifetime = 60 * time.Minute
	maxConnIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open connects to the configured database and returns a gorm handle plus a
// function that releases the underlying pool.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, func(), error) {
	gormCfg := &gorm.Config{
		Logger: NewGormLogger(cfg.SlowQueryThreshold),
	}

	switch cfg.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		log.Info().Str("path", cfg.Path).Msg("SQLite database opened")
		return db, func() { sqlDB.Close() }, nil

	case "", "postgres":
		poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("invalid database DSN: %w", err)
		}
		poolConfig.MaxConns = maxConns
		poolConfig.MinConns = minConns
		poolConfig.MaxConnLifetime = maxConnLifetime
		poolConfig.MaxConnIdleTime = maxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		sqlDB := stdlib.OpenDBFromPool(pool)
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			pool.Close()
			return nil, nil, fmt.Errorf("failed to open gorm over pool: %w", err)
		}

		stats := pool.Stat()
		log.Info().
			Int32("max_conns", stats.MaxConns()).
			Int32("total_conns", stats.TotalConns()).
			Msg("Database connection established")

		return db, func() {
			sqlDB.Close()
			pool.Close()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
