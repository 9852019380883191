package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOption tweaks the pool configuration before the pool is created.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps the number of connections held by the pool.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		c.MaxConns = n
	}
}

// NewPgxPool creates a new PostgreSQL connection pool.
// When ping is true the connection is verified before the pool is returned.
func NewPgxPool(ctx context.Context, databaseURL string, ping bool, opts ...PoolOption) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	for _, opt := range opts {
		opt(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.Debug("PostgreSQL connection pool created", slog.String("host", config.ConnConfig.Host), slog.Int("max_conns", int(config.MaxConns)))
	return pool, nil
}
