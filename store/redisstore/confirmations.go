package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	auth "github.com/MrEthical07/goIdentity"
)

const confirmationKeyPrefix = "idc"

type confirmationRecord struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Confirmations keeps one key per confirmation token; the key TTL is the
// token lifetime.
type Confirmations struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewConfirmations constructs a confirmation-token store with the given
// token lifetime.
func NewConfirmations(redisClient *redis.Client, ttl time.Duration) *Confirmations {
	return &Confirmations{redis: redisClient, ttl: ttl}
}

func (s *Confirmations) key(tokenValue string) string {
	return confirmationKeyPrefix + ":" + tokenValue
}

// Create mints a random token value and stores it with the configured TTL.
func (s *Confirmations) Create(ctx context.Context, userID string, typ auth.ConfirmationTokenType) (string, error) {
	tokenValue := uuid.NewString()
	record := confirmationRecord{
		UserID:    userID,
		Type:      string(typ),
		CreatedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.redis.Set(ctx, s.key(tokenValue), encoded, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return tokenValue, nil
}

// Find returns the confirmation token, or [auth.ErrConfirmationInvalid].
func (s *Confirmations) Find(ctx context.Context, tokenValue string) (*auth.ConfirmationToken, error) {
	data, err := s.redis.Get(ctx, s.key(tokenValue)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrConfirmationInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var record confirmationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	return &auth.ConfirmationToken{
		Token:     tokenValue,
		UserID:    record.UserID,
		Type:      auth.ConfirmationTokenType(record.Type),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.CreatedAt,
	}, nil
}

// Delete consumes the token. A zero DEL reply is reported as
// [auth.ErrConfirmationInvalid], making redemption exactly-once.
func (s *Confirmations) Delete(ctx context.Context, tokenValue string) error {
	deleted, err := s.redis.Del(ctx, s.key(tokenValue)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if deleted == 0 {
		return auth.ErrConfirmationInvalid
	}
	return nil
}
