package auth

import (
	"context"
	"sync"

	"vote-be/pkg/redis"
)

// TokenStore holds issued admin tokens. Lifetime and persistence policy
// live in the implementation: the memory store lasts for the process, the
// Redis store survives restarts with a TTL.
type TokenStore interface {
	Issue(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// MemoryTokenStore keeps tokens in a process-wide set.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]struct{})}
}

func (s *MemoryTokenStore) Issue(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
	return nil
}

func (s *MemoryTokenStore) Verify(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// RedisTokenStore keeps tokens in Redis with a TTL, so admin sessions
// survive process restarts and expire on their own.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Issue(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.client.KeyBuilder.KeyAdminToken(token), "1", redis.TTLAdminToken)
}

func (s *RedisTokenStore) Verify(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.client.KeyBuilder.KeyAdminToken(token))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Delete(ctx, s.client.KeyBuilder.KeyAdminToken(token))
}
