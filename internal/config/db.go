package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"job_portal/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ConnectDB establishes a connection pool to the PostgreSQL database
func ConnectDB(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logger.Info("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("failed to connect to database, retrying",
			"attempt", i+1, "max_attempts", maxRetries, "retry_in", retryInterval, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Migrate applies the embedded goose migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("unable to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	logger.Info("migrations applied")
	return nil
}
