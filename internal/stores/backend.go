package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrBackendUnavailable is returned when the backing key-value store cannot
// be reached. The in-memory backend never returns it.
var ErrBackendUnavailable = errors.New("role store backend unavailable")

// Backend is the associative store consumed by the role store: get returns
// the value for a key (absence is not an error), put inserts or overwrites.
// No delete exists — revoking every role leaves a zero-valued entry that is
// observationally identical to an absent one.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// RedisBackend adapts a Redis client to the Backend interface. Entries are
// plain string keys with binary bitmap payloads and no TTL.
type RedisBackend struct {
	redis redis.UniversalClient
}

// NewRedisBackend wraps the given Redis client.
func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{redis: client}
}

// Get fetches a value. A missing key yields (nil, false, nil).
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return data, true, nil
}

// Put inserts or overwrites a value.
func (b *RedisBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := b.redis.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// MemoryBackend is a process-local Backend for embedded deployments and
// tests. Each operation copies the payload, so callers never observe shared
// slices.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string][]byte)}
}

// Get fetches a value. A missing key yields (nil, false, nil).
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.entries[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Put inserts or overwrites a value.
func (b *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[key] = stored
	return nil
}

// Len returns the number of stored entries. Test helper.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
