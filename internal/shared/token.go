package shared

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTokenKey names the redis entry holding the persisted bearer token.
const defaultTokenKey = "pg_token"

// TokenStore persists the API bearer token across console restarts.
//
// The console holds at most one token at a time: it is written on a
// successful login, cleared on logout, and read by every outgoing API
// request. When no backing store is available the store degrades to a
// no-op: reads report absence and writes are silently dropped.
type TokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore. A nil client yields a no-op store.
func NewTokenStore(client *redis.Client, key string, ttl time.Duration) *TokenStore {
	if key == "" {
		key = defaultTokenKey
	}
	return &TokenStore{client: client, key: key, ttl: ttl}
}

// Set persists the token. Dropped silently when no store is available.
func (s *TokenStore) Set(ctx context.Context, token string) {
	if s == nil || s.client == nil {
		return
	}
	_ = s.client.Set(ctx, s.key, token, s.ttl).Err()
}

// Get returns the persisted token, or false when absent or unreadable.
func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	if s == nil || s.client == nil {
		return "", false
	}
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil || token == "" {
		// An unreachable store reads the same as a missing token.
		return "", false
	}
	return token, true
}

// Clear removes the persisted token.
func (s *TokenStore) Clear(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	_ = s.client.Del(ctx, s.key).Err()
}
