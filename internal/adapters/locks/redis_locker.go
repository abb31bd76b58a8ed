// Package locks provides the cross-process lock used around document approval
// and payment application.
package locks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements portssvc.Locker with SET NX PX.
type RedisLocker struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisLocker constructs a RedisLocker.
func NewRedisLocker(client redis.UniversalClient, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{client: client, logger: logger}
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// Acquire takes key for ttl. A key held by someone else yields a
// ConcurrentModificationError. The returned release is safe to call after
// the ttl has expired and another holder took the key.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, &apperrors.ConcurrentModificationError{Resource: "lock", ID: key}
	}

	release := func() {
		// The caller's ctx may already be cancelled when the work finished.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{keyPrefix + key}, token).Err(); err != nil {
			l.logger.Warn("Failed to release lock", slog.String("key", key), slog.Any("error", err))
		}
	}
	return release, nil
}
