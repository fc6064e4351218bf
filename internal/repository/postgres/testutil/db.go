// Package testutil opens the integration-test database. Tests that use
// it are skipped unless DATABASE_URL is set.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
)

func MustOpenDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse DATABASE_URL: %v", err)
	}

	// keep tests stable
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return pool
}

// MustOpenDocstore opens the database, ensures the documents table and
// truncates it so every test starts from an empty store.
func MustOpenDocstore(t *testing.T) *docstore.Store {
	t.Helper()

	pool := MustOpenDB(t)
	store := docstore.New(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE documents;`); err != nil {
		t.Fatalf("truncate documents: %v", err)
	}
	return store
}
