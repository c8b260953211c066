package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/rostersync/internal/model"
)

var _ model.SnapshotBackend = (*SnapshotRepository)(nil)

type SnapshotRepository struct {
	db *Connection
}

func NewSnapshotRepository(db *Connection) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT payload FROM snapshots WHERE key = $1`

	var payload string
	err := r.db.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return []byte(payload), nil
}

func (r *SnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	const query = `
        INSERT INTO snapshots (key, payload, updated_at) VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
    `

	_, err := r.db.Exec(ctx, query, key, string(data), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}
