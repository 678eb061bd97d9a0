package daylock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerializesSameKey(t *testing.T) {
	locker := NewLocalLocker()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "2024-04-27")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				old := atomic.LoadInt32(&maxInside)
				if n <= old || atomic.CompareAndSwapInt32(&maxInside, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locker.size())
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	locker := NewLocalLocker()

	unlockA, err := locker.Lock(context.Background(), "2024-04-27")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	unlockB, err := locker.Lock(ctx, "2024-04-28")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerContextCancel(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "day")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "day")
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	unlock()
	unlock() // повторный вызов безопасен
	assert.Equal(t, 0, locker.size())
}

func TestRedisLocker(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	locker := NewRedisLocker(client, WithTTL(time.Second), WithRetryInterval(5*time.Millisecond))

	unlock, err := locker.Lock(context.Background(), "2024-04-27")
	require.NoError(t, err)
	assert.True(t, srv.Exists(defaultKeyPrefix+"2024-04-27"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "2024-04-27")
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	unlock()
	assert.False(t, srv.Exists(defaultKeyPrefix+"2024-04-27"))

	unlock2, err := locker.Lock(context.Background(), "2024-04-27")
	require.NoError(t, err)
	unlock2()
}

func TestRedisLockerDoesNotReleaseForeignLock(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	locker := NewRedisLocker(client, WithTTL(time.Second))

	unlock, err := locker.Lock(context.Background(), "day")
	require.NoError(t, err)

	// Блокировка истекла и была захвачена другим владельцем
	require.NoError(t, srv.Set(defaultKeyPrefix+"day", "someone-else"))

	unlock()
	got, err := srv.Get(defaultKeyPrefix + "day")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
