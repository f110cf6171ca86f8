package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSlotLock(t *testing.T) {
	mr, client := newRedis(t)
	lock := NewRedisSlotLock(client, 10*time.Second)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)
	assert.True(t, mr.Exists(SlotKey("prov-1", "2024-06-01", "10:00")))

	_, err = lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	assert.ErrorIs(t, err, ErrSlotLocked)

	other, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "11:00")
	require.NoError(t, err)
	other()

	release()
	assert.False(t, mr.Exists(SlotKey("prov-1", "2024-06-01", "10:00")))

	release, err = lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)
	release()
}

func TestRedisSlotLockExpires(t *testing.T) {
	mr, client := newRedis(t)
	lock := NewRedisSlotLock(client, 10*time.Second)
	ctx := context.Background()

	stale, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)
	mr.FastForward(11 * time.Second)

	fresh, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)

	// The expired holder must not delete the new holder's key.
	stale()
	assert.True(t, mr.Exists(SlotKey("prov-1", "2024-06-01", "10:00")))
	fresh()
}

func TestRedisSlotLockUnavailable(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	_, err := NewRedisSlotLock(client, time.Second).Acquire(context.Background(), "p", "d", "t")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotLocked)
}

func TestLocalSlotLock(t *testing.T) {
	lock := NewLocalSlotLock()
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)
	_, err = lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	assert.ErrorIs(t, err, ErrSlotLocked)

	release()
	release()
	again, err := lock.Acquire(ctx, "prov-1", "2024-06-01", "10:00")
	require.NoError(t, err)
	again()
}

func TestCheckHealth(t *testing.T) {
	mr, client := newRedis(t)
	status := CheckHealth(context.Background(), map[string]*redis.Client{"cache": client}, nil)
	assert.True(t, status.Healthy())
	assert.Nil(t, status.Mongo)

	mr.Close()
	status = CheckHealth(context.Background(), map[string]*redis.Client{"cache": client}, nil)
	assert.False(t, status.Healthy())
	assert.False(t, GetHealthStatus().Healthy())
}
