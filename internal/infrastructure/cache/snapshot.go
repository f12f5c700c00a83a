package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

const snapshotKey = "ricemill:ranking"

// Snapshot caches the ranked score records as one JSON blob.
type Snapshot struct {
	store Store
	ttl   time.Duration
}

// NewSnapshot wraps a store with the ranking-specific serialization. A zero
// ttl disables expiry.
func NewSnapshot(store Store, ttl time.Duration) *Snapshot {
	return &Snapshot{store: store, ttl: ttl}
}

// Get returns the cached ranking, or ErrNotFound when the cache is cold.
func (s *Snapshot) Get(ctx context.Context) ([]*ranking.ScoreRecord, error) {
	data, err := s.store.Get(ctx, snapshotKey)
	if err != nil {
		return nil, err
	}
	var records []*ranking.ScoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Put stores the ranking.
func (s *Snapshot) Put(ctx context.Context, records []*ranking.ScoreRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, snapshotKey, data, s.ttl)
}

// Invalidate drops the cached ranking, forcing the next read to the files.
func (s *Snapshot) Invalidate(ctx context.Context) error {
	return s.store.Delete(ctx, snapshotKey)
}
