// Package cache holds fetched query results (building data, guest visits)
// until a mutation invalidates them. There is no in-place patching: writers
// drop keys and the next reader refetches.
package cache

import (
	"context"
	"time"
)

const (
	// ResidentPrefix scopes every resident-related query, building data included.
	ResidentPrefix   = "residents:"
	GuestVisitPrefix = "guest-visits:"
)

func BuildingDataKey(buildingID string) string {
	return ResidentPrefix + "building-data:" + buildingID
}

func GuestVisitsKey(buildingID string) string {
	return GuestVisitPrefix + buildingID
}

// Store is a JSON value cache. Values are copied in and out, so callers never
// share memory with the cache.
type Store interface {
	// Get decodes the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
