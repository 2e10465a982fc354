package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// snapshotSchemaVersion is bumped whenever the persisted snapshot shape
// changes. Older blobs are migrated on load instead of being defaulted
// field by field.
const snapshotSchemaVersion = 1

// snapshot is the single persisted blob holding the whole center state.
type snapshot struct {
	SchemaVersion int             `json:"schema_version"`
	Notifications []*Notification `json:"notifications"`
	Settings      Settings        `json:"settings"`
	DedupKeys     []string        `json:"dedup_keys"`
}

// SnapshotStore persists the center state as one opaque blob under a stable key.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotStore(client *redis.Client, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		key:    key,
	}
}

// Load returns nil data when no snapshot has been written yet.
func (s *RedisSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notification snapshot: %w", err)
	}

	return data, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save notification snapshot: %w", err)
	}

	return nil
}

// decodeSnapshot parses a persisted blob and migrates older schema versions.
func decodeSnapshot(data []byte) (snapshot, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode notification snapshot: %w", err)
	}

	switch {
	case snap.SchemaVersion > snapshotSchemaVersion:
		return snap, fmt.Errorf("notification snapshot schema version %d is newer than supported version %d",
			snap.SchemaVersion, snapshotSchemaVersion)
	case snap.SchemaVersion == 0:
		// Version 0 blobs predate the dedup index. Rebuild it from the keys
		// stored on the notifications themselves.
		snap.DedupKeys = nil
		for _, n := range snap.Notifications {
			if n.DedupKey != "" {
				snap.DedupKeys = append(snap.DedupKeys, n.DedupKey)
			}
		}
		snap.SchemaVersion = snapshotSchemaVersion
	}

	if snap.Settings.PermissionStatus == "" {
		snap.Settings.PermissionStatus = PermissionDefault
	}

	return snap, nil
}
