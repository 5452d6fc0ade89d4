package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
)

const codeKeyPrefix = "verification:code:"

// RedisCodeStore keeps one-time verification codes in Redis with a TTL, so
// codes survive process restarts and expire without any sweeper.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore creates a new RedisCodeStore.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

var _ portsrepo.CodeStore = (*RedisCodeStore)(nil)

func codeKey(custID string) string {
	return codeKeyPrefix + custID
}

// SaveCode stores the code, replacing any previous one for the customer.
func (s *RedisCodeStore) SaveCode(ctx context.Context, custID, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(custID), code, ttl).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to store verification code", err)
	}
	return nil
}

// GetCode retrieves the live code for a customer.
func (s *RedisCodeStore) GetCode(ctx context.Context, custID string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(custID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.NewNotFoundError("no verification code for customer")
		}
		return "", apperrors.NewAppError(500, "failed to read verification code", err)
	}
	return code, nil
}

// DeleteCode consumes the code after a successful verification.
func (s *RedisCodeStore) DeleteCode(ctx context.Context, custID string) error {
	if err := s.client.Del(ctx, codeKey(custID)).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to delete verification code", err)
	}
	return nil
}
