// Package store persists the hub and point collections as two JSON arrays in
// a key-value layout, with a province cache alongside.
package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/model"
)

const (
	stateKeyHubs   = "hubs"
	stateKeyPoints = "points"

	stateTable         = "state"
	provinceCacheTable = "province_cache"
)

// Store defines the persistence interface for the coverage state.
type Store interface {
	LoadState(ctx context.Context) (model.State, error)
	SaveState(ctx context.Context, st model.State) error

	// Province cache, keyed by rounded coordinates.
	GetCachedProvince(ctx context.Context, key string) (string, bool, error)
	PutCachedProvince(ctx context.Context, key, province string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// ProvinceCache adapts a Store to the resolver's cache interface.
type ProvinceCache struct {
	S Store
}

func (c ProvinceCache) Get(ctx context.Context, key string) (string, bool, error) {
	return c.S.GetCachedProvince(ctx, key)
}

func (c ProvinceCache) Put(ctx context.Context, key, province string) error {
	return c.S.PutCachedProvince(ctx, key, province)
}

// decodeCollection unmarshals one stored JSON array. Malformed data falls
// back to an empty collection with a warning so a damaged store never blocks
// startup.
func decodeCollection[T any](key, raw string) []T {
	if raw == "" {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		zap.L().Warn("store: malformed collection, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return out
}

// encodeState marshals both collections for persistence.
func encodeState(st model.State) (hubs, points string, err error) {
	hubsJSON, err := json.Marshal(st.Hubs)
	if err != nil {
		return "", "", err
	}
	pointsJSON, err := json.Marshal(st.Points)
	if err != nil {
		return "", "", err
	}
	return string(hubsJSON), string(pointsJSON), nil
}
