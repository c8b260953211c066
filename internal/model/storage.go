package model

import "context"

// Snapshot keys used by the stores.
const (
	SnapshotCommunities = "communities"
	SnapshotScheduler   = "scheduler"
)

// SnapshotBackend persists whole snapshots under a key. Save replaces the
// previous snapshot atomically; Load returns ErrNotFound when none exists.
type SnapshotBackend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
