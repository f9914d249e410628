package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"servicehub/internal/models"
)

// SessionRepository keeps refresh tokens in Redis with a TTL.
type SessionRepository struct {
	RDB *redis.Client
}

func sessionKey(token string) string {
	return "session:" + token
}

func accountSessionsKey(accountID int64) string {
	return fmt.Sprintf("account:%d:sessions", accountID)
}

func (r *SessionRepository) SaveSession(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	_, err := r.RDB.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(token), accountID, ttl)
		pipe.SAdd(ctx, accountSessionsKey(accountID), token)
		pipe.Expire(ctx, accountSessionsKey(accountID), ttl)
		return nil
	})
	return err
}

func (r *SessionRepository) GetSession(ctx context.Context, token string) (int64, error) {
	raw, err := r.RDB.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, models.ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	accountID, err := r.GetSession(ctx, token)
	if errors.Is(err, models.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = r.RDB.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(token))
		pipe.SRem(ctx, accountSessionsKey(accountID), token)
		return nil
	})
	return err
}

// DeleteAccountSessions revokes every refresh token of the account.
func (r *SessionRepository) DeleteAccountSessions(ctx context.Context, accountID int64) error {
	tokens, err := r.RDB.SMembers(ctx, accountSessionsKey(accountID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, accountSessionsKey(accountID))
	return r.RDB.Del(ctx, keys...).Err()
}
