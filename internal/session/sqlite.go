package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sqlagent/sqlagent-cli/internal/dbx"

	_ "modernc.org/sqlite"
)

const (
	keyCredential = "api_key"
	keyUser       = "user"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`

// SQLiteStore keeps the session pair in a local sqlite file, one row
// per entry.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database at dsn.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init state db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already-opened database. The session table
// must exist.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, []byte, error) {
	cred, err := get(ctx, s.db, keyCredential)
	if err != nil {
		return "", nil, err
	}
	user, err := get(ctx, s.db, keyUser)
	if err != nil {
		return "", nil, err
	}
	return string(cred), user, nil
}

func (s *SQLiteStore) Save(ctx context.Context, credential string, user []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyCredential, []byte(credential)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, user)
	})
}

func (s *SQLiteStore) SaveUser(ctx context.Context, user []byte) error {
	return set(ctx, s.db, keyUser, user)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyCredential, keyUser)
		if err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}
