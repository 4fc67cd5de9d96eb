// Package sessions tracks revoked sessions in Redis. Signed tokens cannot
// be recalled once issued, so banning an account drops its id on a
// revocation list checked by the auth middleware until the longest-lived
// token has expired.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Ougobatec/Breezy-sub000/pkg/config"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// Revoker is the Redis-backed session revocation list. A nil Revoker is
// valid and never reports a session as revoked.
type Revoker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevoker connects to Redis. Returns nil when Redis is disabled.
func NewRevoker(cfg *config.RedisConfig, tokenTTL time.Duration) (*Revoker, error) {
	if !cfg.Enabled {
		logging.L().Info("Redis disabled, session revocation inactive")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.L().Info("Redis connection established")
	return &Revoker{client: client, ttl: tokenTTL}, nil
}

func key(userID uint) string {
	return fmt.Sprintf("breezy:revoked:%d", userID)
}

// Revoke invalidates every outstanding session of the account. The entry
// expires with the longest possible token lifetime.
func (r *Revoker) Revoke(ctx context.Context, userID uint) error {
	if r == nil {
		return nil
	}
	return r.client.Set(ctx, key(userID), "1", r.ttl).Err()
}

// Restore clears the revocation entry (unban).
func (r *Revoker) Restore(ctx context.Context, userID uint) error {
	if r == nil {
		return nil
	}
	return r.client.Del(ctx, key(userID)).Err()
}

// IsRevoked reports whether the account's sessions are invalidated.
func (r *Revoker) IsRevoked(ctx context.Context, userID uint) (bool, error) {
	if r == nil {
		return false, nil
	}
	res, err := r.client.Exists(ctx, key(userID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

// Close releases the Redis connection.
func (r *Revoker) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}
