package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	verifyPrefix = "verify:"
	resetPrefix  = "reset:"

	verifyTTL = 24 * time.Hour
	resetTTL  = time.Hour
)

// TokenRepository stores one-shot email verification and password reset
// tokens in Redis. Tokens expire on their TTL and are deleted on first use.
type TokenRepository struct {
	rdb *redis.Client
}

// NewTokenRepository creates a new token repository instance
func NewTokenRepository(rdb *redis.Client) *TokenRepository {
	return &TokenRepository{rdb: rdb}
}

// SaveVerifyToken stores a verification token pointing at a user ID.
func (r *TokenRepository) SaveVerifyToken(ctx context.Context, token, userID string) error {
	return r.rdb.Set(ctx, verifyPrefix+token, userID, verifyTTL).Err()
}

// ConsumeVerifyToken returns the user ID for a token and invalidates it.
func (r *TokenRepository) ConsumeVerifyToken(ctx context.Context, token string) (string, error) {
	return r.rdb.GetDel(ctx, verifyPrefix+token).Result()
}

// SaveResetToken stores a password reset token pointing at a user ID.
func (r *TokenRepository) SaveResetToken(ctx context.Context, token, userID string) error {
	return r.rdb.Set(ctx, resetPrefix+token, userID, resetTTL).Err()
}

// ConsumeResetToken returns the user ID for a token and invalidates it.
func (r *TokenRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	return r.rdb.GetDel(ctx, resetPrefix+token).Result()
}
