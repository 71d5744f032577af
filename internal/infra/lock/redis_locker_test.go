package lock

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLockPrefix = "carts:lock:"

func newTestRedisLocker(t *testing.T, ttl time.Duration) (*redisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisLocker(client, testLockPrefix, ttl, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return locker.(*redisLocker), mr
}

func TestRedisLocker_SerialisesSameKey(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 10*time.Second)

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			unlock, err := locker.Lock(ctx, "cart:7")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := inside.Add(1)
			for {
				prev := maxInside.Load()
				if n <= prev || maxInside.CompareAndSwap(prev, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxInside.Load())
	assert.False(t, mr.Exists(testLockPrefix+"cart:7"), "last holder released the key")
}

func TestRedisLocker_DifferentKeysDoNotBlock(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 10*time.Second)

	unlockA, err := locker.Lock(context.Background(), "cart:1")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := locker.Lock(ctx, "cart:2")
	require.NoError(t, err)

	assert.True(t, mr.Exists(testLockPrefix+"cart:1"))
	assert.True(t, mr.Exists(testLockPrefix+"cart:2"))

	unlockB()
	assert.False(t, mr.Exists(testLockPrefix+"cart:2"))
}

func TestRedisLocker_ContextCancelled(t *testing.T) {
	locker, _ := newTestRedisLocker(t, 10*time.Second)

	unlock, err := locker.Lock(context.Background(), "wishlist:3")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "wishlist:3")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRedisLocker_StaleHolderKeepsTakeover(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 100*time.Millisecond)
	key := testLockPrefix + "cart:9"

	unlockStale, err := locker.Lock(context.Background(), "cart:9")
	require.NoError(t, err)
	staleToken, err := mr.Get(key)
	require.NoError(t, err)

	// The first holder outlives its ttl and another holder takes the key over.
	mr.FastForward(200 * time.Millisecond)
	require.False(t, mr.Exists(key))

	unlockNew, err := locker.Lock(context.Background(), "cart:9")
	require.NoError(t, err)
	newToken, err := mr.Get(key)
	require.NoError(t, err)
	require.NotEqual(t, staleToken, newToken)

	unlockStale()

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, newToken, got, "stale release must not delete the new holder's key")

	unlockNew()
	assert.False(t, mr.Exists(key))
}

func TestRedisLocker_SetsTTL(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 10*time.Second)

	unlock, err := locker.Lock(context.Background(), "cart:4")
	require.NoError(t, err)
	defer unlock()

	assert.Equal(t, 10*time.Second, mr.TTL(testLockPrefix+"cart:4"))
}
