package daylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL       = 10 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	defaultKeyPrefix     = "salon:daylock:"
)

// releaseScript снимает блокировку, только если она все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker блокировки между несколькими инстансами сервиса (SET NX PX)
type RedisLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	retryInterval time.Duration
	prefix        string
}

// RedisOption настройка RedisLocker
type RedisOption func(*RedisLocker)

// WithTTL время жизни блокировки; должно превышать длительность самой долгой записи
func WithTTL(ttl time.Duration) RedisOption {
	return func(l *RedisLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetryInterval пауза между попытками захвата
func WithRetryInterval(interval time.Duration) RedisOption {
	return func(l *RedisLocker) {
		if interval > 0 {
			l.retryInterval = interval
		}
	}
}

// WithKeyPrefix префикс ключей блокировок
func WithKeyPrefix(prefix string) RedisOption {
	return func(l *RedisLocker) {
		l.prefix = prefix
	}
}

// NewRedisLocker создает RedisLocker
func NewRedisLocker(client redis.Cmdable, opts ...RedisOption) *RedisLocker {
	l := &RedisLocker{
		client:        client,
		ttl:           defaultLockTTL,
		retryInterval: defaultRetryInterval,
		prefix:        defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock повторяет SET NX до успеха или отмены контекста
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: setnx %s: %v", ErrLockNotAcquired, redisKey, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Снимаем блокировку даже если контекст запроса уже отменен
			releaseCtx, cancel := context.WithTimeout(context.Background(), l.ttl)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
		})
	}, nil
}
