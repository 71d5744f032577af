package lock

import (
	"context"
	"log/slog"
	"time"

	"cosmiccraft/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = 2 * time.Second

// releaseScript deletes the key only while it still carries our token, so an expired
// lock taken over by another holder is never released by the previous one.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker is a KeyedLocker shared by every replica pointing at the same Redis.
type redisLocker struct {
	client        redis.UniversalClient
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	logger        *slog.Logger
}

// NewRedisLocker creates a KeyedLocker backed by SET NX PX.
// ttl bounds how long a crashed holder can block an owner.
func NewRedisLocker(client redis.UniversalClient, prefix string, ttl, retryInterval time.Duration, logger *slog.Logger) service.KeyedLocker {
	return &redisLocker{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: retryInterval,
		logger:        logger,
	}
}

// Lock polls until the key is free or ctx is done.
func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.WithStack(ctxErr)
			}

			return nil, errors.Wrapf(err, "failed to acquire redis lock %s", redisKey)
		}
		if acquired {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *redisLocker) unlockFunc(redisKey, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			// The key expires on its own after ttl.
			l.logger.Warn("Failed to release redis lock",
				slog.String("key", redisKey),
				slog.Any("error", err),
			)
		}
	}
}
