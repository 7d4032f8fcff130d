// Package store persists companies, extracted statements and simulated
// scenarios in Postgres. One process-wide pgx pool, JSONB payloads, schema
// managed by migrations outside this package.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// maxPoolConns caps the pool; the API serves few concurrent writers.
const maxPoolConns = 8

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool. The DSN comes from the server
// config; when empty, the DATABASE_URL environment variable is tried. Safe
// to call more than once; only the first call connects.
func InitDB(ctx context.Context, dsn string) error {
	var err error
	once.Do(func() {
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			err = fmt.Errorf("no database DSN: set database_url in server.yaml or DATABASE_URL")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dsn)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}
		config.MaxConns = maxPoolConns

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the shared connection pool, nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
