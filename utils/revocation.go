package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// RevocationStore remembers logged-out session ids until their natural expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, id string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// RedisRevocations keeps revoked ids as keys whose TTL matches the session expiry.
type RedisRevocations struct {
	client *redis.Client
}

// NewRedisRevocations wraps a Redis client.
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+id, "1", ttl).Err()
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocations is the single-process fallback.
type MemoryRevocations struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations returns an empty in-memory store.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{entries: map[string]time.Time{}, now: time.Now}
}

func (m *MemoryRevocations) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	if !expiresAt.After(m.now()) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = expiresAt
	// prune whatever has expired so the map stays bounded by live sessions
	for k, exp := range m.entries {
		if !exp.After(m.now()) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	exp, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var (
	revocations     RevocationStore
	revocationsOnce sync.Once
)

// Revocations returns the process-wide store: Redis when configured, memory otherwise.
func Revocations() RevocationStore {
	revocationsOnce.Do(func() {
		if rc := GetRedis(); rc != nil {
			revocations = NewRedisRevocations(rc)
			return
		}
		revocations = NewMemoryRevocations()
	})
	return revocations
}

// RevokeSession marks a session id as logged out.
func RevokeSession(id string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Revocations().Revoke(ctx, id, expiresAt)
}

// IsSessionRevoked reports whether a session id was logged out. A lookup error counts as not revoked.
func IsSessionRevoked(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	revoked, err := Revocations().IsRevoked(ctx, id)
	if err != nil {
		Sugar.Warnw("session revocation lookup failed", "error", err)
		return false
	}
	return revoked
}
