package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps one-time reset codes and revoked token ids until they
// expire.
type TokenStore interface {
	SaveCode(ctx context.Context, code, userID string, ttl time.Duration) error
	// ConsumeCode returns the user id for code and deletes it.
	ConsumeCode(ctx context.Context, code string) (string, error)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const (
	codePrefix    = "auth:code:"
	revokedPrefix = "auth:revoked:"
)

type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) SaveCode(ctx context.Context, code, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, codePrefix+code, userID, ttl).Err()
}

func (s *RedisTokenStore) ConsumeCode(ctx context.Context, code string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, codePrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidCode
	}
	return userID, err
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedPrefix+jti, 1, ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type entry struct {
	value   string
	expires time.Time
}

// MemoryTokenStore is used when REDIS_ADDR is unset and in tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: map[string]entry{}, now: time.Now}
}

func (s *MemoryTokenStore) set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expires: s.now().Add(ttl)}
}

// take returns the live value for key; expired entries are dropped.
func (s *MemoryTokenStore) take(key string, remove bool) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false
	}
	if remove {
		delete(s.entries, key)
	}
	return e.value, true
}

func (s *MemoryTokenStore) SaveCode(_ context.Context, code, userID string, ttl time.Duration) error {
	s.set(codePrefix+code, userID, ttl)
	return nil
}

func (s *MemoryTokenStore) ConsumeCode(_ context.Context, code string) (string, error) {
	userID, ok := s.take(codePrefix+code, true)
	if !ok {
		return "", ErrInvalidCode
	}
	return userID, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		s.set(revokedPrefix+jti, "1", ttl)
	}
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.take(revokedPrefix+jti, false)
	return ok, nil
}
