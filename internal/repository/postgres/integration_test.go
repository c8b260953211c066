//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/rostersync/internal/model"
	repo "github.com/dtroode/rostersync/internal/repository/postgres"
	"github.com/dtroode/rostersync/internal/store"
	"github.com/dtroode/rostersync/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "rostersync_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/rostersync_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	snapshots := repo.NewSnapshotRepository(conn)

	_, err = snapshots.Load(ctx, model.SnapshotCommunities)
	require.ErrorIs(t, err, model.ErrNotFound)

	payload := []byte("{\n  \"version\": 1\n}")
	require.NoError(t, snapshots.Save(ctx, model.SnapshotCommunities, payload))
	require.NoError(t, snapshots.Save(ctx, model.SnapshotCommunities, payload))

	got, err := snapshots.Load(ctx, model.SnapshotCommunities)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSnapshotRepository_BacksCommunityStore(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	backend := repo.NewSnapshotRepository(conn)
	communities := store.NewCommunities(backend, testutil.MakeNoopLogger())
	require.NoError(t, communities.SetVerifiedRole(ctx, "guild", "verified"))
	require.NoError(t, communities.AddOverride(ctx, "guild", "m1", "Jane Smith"))

	reloaded := store.NewCommunities(backend, testutil.MakeNoopLogger())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, communities.GetOrCreate("guild"), reloaded.GetOrCreate("guild"))
}
