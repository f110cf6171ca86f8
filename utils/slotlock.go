package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrSlotLocked is returned when another request holds the slot lock.
var ErrSlotLocked = errors.New("slot is locked by another request")

// SlotLocker serialises booking attempts for one provider slot.
type SlotLocker interface {
	// Acquire returns a release func, or ErrSlotLocked when the slot is held.
	Acquire(ctx context.Context, providerID, date, timeOfDay string) (func(), error)
}

// SlotKey builds the lock key for a provider slot.
func SlotKey(providerID, date, timeOfDay string) string {
	return fmt.Sprintf("%s%s:%s:%s", SlotLockPrefix, providerID, date, timeOfDay)
}

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotLock is a SET NX lock with a TTL.
type RedisSlotLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLock locks slots in client. Locks expire after ttl.
func NewRedisSlotLock(client *redis.Client, ttl time.Duration) *RedisSlotLock {
	if ttl <= 0 {
		ttl = SlotLockTTL
	}
	return &RedisSlotLock{client: client, ttl: ttl}
}

// Acquire takes the slot or returns ErrSlotLocked. The release func only
// deletes the key while it still holds this caller's token.
func (l *RedisSlotLock) Acquire(ctx context.Context, providerID, date, timeOfDay string) (func(), error) {
	key := SlotKey(providerID, date, timeOfDay)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			GetLogger().Sugar().Warnw("Failed to release slot lock", "key", key, "error", err)
		}
	}
	return release, nil
}

// LocalSlotLock is an in-process SlotLocker for single-instance deployments
// without Redis.
type LocalSlotLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalSlotLock returns a lock with no slots held.
func NewLocalSlotLock() *LocalSlotLock {
	return &LocalSlotLock{held: make(map[string]struct{})}
}

// Acquire takes the slot or returns ErrSlotLocked.
func (l *LocalSlotLock) Acquire(_ context.Context, providerID, date, timeOfDay string) (func(), error) {
	key := SlotKey(providerID, date, timeOfDay)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, ErrSlotLocked
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
