package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/kmlog/internal/logger"
)

// LoginAttemptRepository counts failed logins per username using Redis.
// Counters expire after the lockout window.
type LoginAttemptRepository struct {
	client *redis.Client
	window time.Duration
}

// NewLoginAttemptRepository creates a new repository instance.
func NewLoginAttemptRepository(client *redis.Client, window time.Duration) *LoginAttemptRepository {
	return &LoginAttemptRepository{
		client: client,
		window: window,
	}
}

func attemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

// Count returns the number of failed logins inside the current window.
func (r *LoginAttemptRepository) Count(ctx context.Context, username string) (int64, error) {
	key := attemptsKey(username)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.Log.Infow("failed to read login attempts", "key", key, "error", err)
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Infow("malformed login attempts counter", "key", key, "value", val, "error", err)
		return 0, err
	}
	return count, nil
}

// Increment records one failed login. The window starts at the first failure.
func (r *LoginAttemptRepository) Increment(ctx context.Context, username string) (int64, error) {
	key := attemptsKey(username)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	})
	if err != nil {
		logger.Log.Infow("failed to increment login attempts", "key", key, "error", err)
		return 0, err
	}

	logger.Log.Debugw("login attempt recorded", "key", key, "count", incr.Val())
	return incr.Val(), nil
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, username string) error {
	return r.client.Del(ctx, attemptsKey(username)).Err()
}
