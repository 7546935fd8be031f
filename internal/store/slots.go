package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/varigen/internal/ir"
)

// DefaultKey is the slot holding the application state.
const DefaultKey = "variant-generator-data"

// ErrNotFound is returned when a slot does not exist.
var ErrNotFound = errors.New("slot not found")

// Load returns the blob stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM slots WHERE key = ?
	`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return data, nil
}

// Save writes data under key and returns the slot's revision.
// The revision only advances when the content digest changes.
func (s *Store) Save(ctx context.Context, key string, data []byte) (int64, error) {
	if data == nil {
		data = []byte{}
	}
	digest := ir.StateDigest(data)

	var revision int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO slots (key, data, digest, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			digest = excluded.digest,
			revision = CASE
				WHEN slots.digest = excluded.digest THEN slots.revision
				ELSE slots.revision + 1
			END
		RETURNING revision
	`, key, data, digest).Scan(&revision)
	if err != nil {
		return 0, fmt.Errorf("save %q: %w", key, err)
	}
	return revision, nil
}

// Revision returns the current revision of a slot.
func (s *Store) Revision(ctx context.Context, key string) (int64, error) {
	var revision int64
	err := s.db.QueryRowContext(ctx, `
		SELECT revision FROM slots WHERE key = ?
	`, key).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("revision %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return revision, nil
}

// Digest returns the stored content digest of a slot.
func (s *Store) Digest(ctx context.Context, key string) (string, error) {
	var digest string
	err := s.db.QueryRowContext(ctx, `
		SELECT digest FROM slots WHERE key = ?
	`, key).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("digest %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("digest %q: %w", key, err)
	}
	return digest, nil
}

// Clear deletes a slot. Clearing a missing slot is not an error.
func (s *Store) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear %q: %w", key, err)
	}
	return nil
}

// Keys returns all slot keys in byte order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key FROM slots ORDER BY key ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("list keys: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}
