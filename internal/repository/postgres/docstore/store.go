// Package docstore is the persistence collaborator: a generic
// key→JSON-blob table. Collections are key prefixes; every entity is
// one row.
package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the documents table if missing. Called once at
// startup; there is no migration history for a single-table store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS documents (
	key        text PRIMARY KEY,
	doc        jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);`
	_, err := s.db.Exec(ctx, q)
	return err
}

// Get unmarshals the blob at key into out. Returns (false, nil) when
// the key is absent.
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	const q = `SELECT doc FROM documents WHERE key = $1;`

	var raw []byte
	if err := s.db.QueryRow(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

// Put upserts the value at key.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO documents (key, doc, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now();`
	_, err = s.db.Exec(ctx, q, key, raw)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM documents WHERE key = $1;`
	_, err := s.db.Exec(ctx, q, key)
	return err
}

// ListPrefix returns the raw blobs of every key under prefix, ordered
// by key for stable iteration.
func (s *Store) ListPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	const q = `SELECT doc FROM documents WHERE key LIKE $1 || '%' ORDER BY key;`

	rows, err := s.db.Query(ctx, q, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(raw))
	}
	return out, rows.Err()
}
