package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/model"
)

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestOpen_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rostersync.db")

	db, err := Open(path)
	require.NoError(t, err)

	repo := NewSnapshotRepository(db)
	_, err = repo.Load(ctx, model.SnapshotScheduler)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Save(ctx, model.SnapshotScheduler, []byte(`{"enabled":true}`)))
	require.NoError(t, repo.Save(ctx, model.SnapshotScheduler, []byte(`{"enabled":false}`)))
	require.NoError(t, db.Close())

	// reopening runs the migrations again and keeps the data
	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	data, err := NewSnapshotRepository(db).Load(ctx, model.SnapshotScheduler)
	require.NoError(t, err)
	assert.Equal(t, `{"enabled":false}`, string(data))
}
