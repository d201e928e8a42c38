package kvstore

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore is a non-durable Store used in tests and when no cache file
// path is configured. Values never expire; the shell owns their lifecycle.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	if x, found := s.cache.Get(key); found {
		return x.([]byte), true
	}
	return nil, false
}

func (s *MemoryStore) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.cache.Set(key, v, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}
