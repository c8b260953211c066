package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/rostersync/internal/model"
)

var _ model.SnapshotBackend = (*SnapshotRepository)(nil)

// SnapshotRepository keeps one row per snapshot key; a save is a single upsert.
type SnapshotRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		now: time.Now,
	}
}

func (r *SnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM snapshots WHERE key = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return []byte(payload), nil
}

func (r *SnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
        INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
        ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
    `

	_, err := r.db.ExecContext(ctx, query, key, string(data), r.now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}
