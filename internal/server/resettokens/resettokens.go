// Package resettokens issues and redeems one-time password-reset tokens.
package resettokens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/redis/go-redis/v9"
)

const tokenBytes = 32

// Store hands out tokens that map back to an account id until they are
// consumed or expire. Consume on an unknown, used or expired token returns
// common.ErrInvalidToken.
type Store interface {
	Issue(ctx context.Context, accountID string, ttl time.Duration) (string, error)
	Consume(ctx context.Context, token string) (string, error)
}

type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "password_reset:"}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) Issue(ctx context.Context, accountID string, ttl time.Duration) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.key(token), accountID, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Consume(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidToken
	}
	id, err := s.rdb.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return id, nil
}

type entry struct {
	accountID string
	expires   time.Time
}

// MemoryStore keeps tokens in process; used with the memory profile backend.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) Issue(ctx context.Context, accountID string, ttl time.Duration) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = entry{accountID: accountID, expires: s.now().Add(ttl)}
	return token, nil
}

func (s *MemoryStore) Consume(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	delete(s.entries, token)
	if !s.now().Before(e.expires) {
		return "", common.ErrInvalidToken
	}
	return e.accountID, nil
}
