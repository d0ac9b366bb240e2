package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authd/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

// opTimeout bounds a single round trip so a slow store surfaces as
// ErrStoreUnavailable instead of hanging the request.
const opTimeout = 2 * time.Second

// TokenRepository implements the revocation index on redis. Each user holds
// at most one live entry per token class; the entry TTL matches the token's
// own expiry so the index and the token never diverge.
type TokenRepository struct {
	db *Connection
}

func NewTokenRepository(db *Connection) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

func (r *TokenRepository) Save(ctx context.Context, class model.TokenClass, userID uuid.UUID, token string, ttl time.Duration) error {
	return r.retry(ctx, func(ctx context.Context) error {
		return r.db.Set(ctx, entryKey(class, userID), token, ttl).Err()
	})
}

func (r *TokenRepository) Exists(ctx context.Context, class model.TokenClass, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.retry(ctx, func(ctx context.Context) error {
		var err error
		n, err = r.db.Exists(ctx, entryKey(class, userID)).Result()
		return err
	})
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *TokenRepository) Delete(ctx context.Context, class model.TokenClass, userID uuid.UUID) error {
	return r.retry(ctx, func(ctx context.Context) error {
		return r.db.Del(ctx, entryKey(class, userID)).Err()
	})
}

// retry runs op with a per-attempt timeout and retries once on failure.
// Exhausted attempts surface as ErrStoreUnavailable.
func (r *TokenRepository) retry(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, opTimeout)
		lastErr = op(opCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, lastErr)
}

func entryKey(class model.TokenClass, userID uuid.UUID) string {
	return fmt.Sprintf("%s_token:%s", class, userID)
}
