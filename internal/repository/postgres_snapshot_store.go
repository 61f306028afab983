package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

const createSnapshotTable = `CREATE TABLE IF NOT EXISTS roster_snapshots (
	key TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type snapshotRow struct {
	Key       string    `db:"key"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresSnapshotStore keeps the document in one row of roster_snapshots.
type PostgresSnapshotStore struct {
	db  *sqlx.DB
	key string
}

// NewPostgresSnapshotStore constructs the store.
func NewPostgresSnapshotStore(db *sqlx.DB, key string) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db, key: key}
}

// EnsureSchema creates the snapshot table when missing.
func (s *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSnapshotTable); err != nil {
		return fmt.Errorf("create roster_snapshots: %w", err)
	}
	return nil
}

// Read loads the payload for the configured key.
func (s *PostgresSnapshotStore) Read(ctx context.Context) ([]byte, error) {
	const query = `SELECT payload FROM roster_snapshots WHERE key = $1`
	var payload string
	if err := s.db.GetContext(ctx, &payload, query, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrSnapshotMissing
		}
		return nil, fmt.Errorf("select roster snapshot: %w", err)
	}
	return []byte(payload), nil
}

// Write upserts the payload row.
func (s *PostgresSnapshotStore) Write(ctx context.Context, payload []byte) error {
	const query = `INSERT INTO roster_snapshots (key, payload, updated_at)
		VALUES (:key, :payload, :updated_at)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at`
	row := snapshotRow{Key: s.key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert roster snapshot: %w", err)
	}
	return nil
}
