package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	auth "github.com/MrEthical07/goIdentity"
)

const sessionKeyPrefix = "ids"

// ErrRedisUnavailable wraps transport failures talking to Redis.
var ErrRedisUnavailable = errors.New("redis unavailable")

type sessionRecord struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Sessions keeps one key per refresh token. Expiry rides on the key TTL,
// so stale sessions vanish without a sweep.
type Sessions struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessions constructs a session store. ttl must match the refresh-token
// lifetime so the key outlives every token that references it.
func NewSessions(redisClient *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{redis: redisClient, ttl: ttl}
}

func (s *Sessions) key(refreshToken string) string {
	return sessionKeyPrefix + ":" + refreshToken
}

// Create stores a session record under the refresh-token key.
func (s *Sessions) Create(ctx context.Context, userID, refreshToken string) error {
	record := sessionRecord{UserID: userID, CreatedAt: time.Now().UTC()}
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(refreshToken), encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Find returns the session for a refresh token, or [auth.ErrSessionNotFound].
func (s *Sessions) Find(ctx context.Context, refreshToken string) (*auth.Session, error) {
	data, err := s.redis.Get(ctx, s.key(refreshToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	return &auth.Session{
		ID:           refreshToken,
		UserID:       record.UserID,
		RefreshToken: refreshToken,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.CreatedAt,
	}, nil
}

// Delete removes the session key. DEL is atomic and replies with the number
// of keys removed; a zero reply is reported as [auth.ErrSessionNotFound],
// which is what lets exactly one concurrent rotation win.
func (s *Sessions) Delete(ctx context.Context, refreshToken string) error {
	deleted, err := s.redis.Del(ctx, s.key(refreshToken)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if deleted == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}
