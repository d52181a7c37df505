package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &MemoryStore{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		s.c.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.c.Set(key, raw, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.c.Delete(k)
	}
	return nil
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	for k := range s.c.Items() {
		if strings.HasPrefix(k, prefix) {
			s.c.Delete(k)
		}
	}
	return nil
}

// Len is the number of stored entries, expired ones included until swept.
func (s *MemoryStore) Len() int {
	return s.c.ItemCount()
}
