package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
	"github.com/redis/go-redis/v9"
)

// ThrottleRepositoryImpl implements domain.OTPThrottle using Redis
type ThrottleRepositoryImpl struct {
	client *redis.Client
	window time.Duration
}

// NewThrottleRepository creates a new Redis-backed resend throttle
func NewThrottleRepository(client *redis.Client, window time.Duration) domain.OTPThrottle {
	return &ThrottleRepositoryImpl{client: client, window: window}
}

func (t *ThrottleRepositoryImpl) key(email string) string {
	return fmt.Sprintf("otp:res:%s", email)
}

// Reserve implements domain.OTPThrottle. SETNX makes the claim atomic: the
// first caller inside the window wins, everyone else gets the remaining TTL.
func (t *ThrottleRepositoryImpl) Reserve(ctx context.Context, email string) (bool, time.Duration, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), 1, t.window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to reserve resend slot: %w", err)
	}
	if ok {
		return true, 0, nil
	}

	ttl, err := t.client.TTL(ctx, t.key(email)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return false, ttl, nil
}

// Release implements domain.OTPThrottle
func (t *ThrottleRepositoryImpl) Release(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}
