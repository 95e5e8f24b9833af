package testutil

import (
	"context"
	"sync"
	"time"
)

// TokenStore is an in-memory token allowlist. TTLs are recorded but never
// expire entries.
type TokenStore struct {
	mu   sync.Mutex
	keys map[string]time.Duration
	Err  error
}

func NewTokenStore() *TokenStore {
	return &TokenStore{keys: make(map[string]time.Duration)}
}

func (s *TokenStore) Store(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.keys[key] = ttl
	return nil
}

func (s *TokenStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.keys[key]
	return ok, nil
}

func (s *TokenStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, k := range keys {
		delete(s.keys, k)
	}
	return nil
}

// Len reports how many keys are currently allowed.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
