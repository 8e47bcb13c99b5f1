package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vetgate/pkg/platform/sentinel"
)

const sessionKey = "vetgate:session:current"

// Session lifetimes in Redis. Remembered sessions match the platform's
// refresh-token window; plain sessions expire within a day.
const (
	rememberedTTL = 30 * 24 * time.Hour
	defaultTTL    = 24 * time.Hour
)

// RedisStore persists the session in Redis so it survives gateway restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := defaultTTL
	if session.RememberMe {
		ttl = rememberedTTL
	}
	return s.client.Set(ctx, sessionKey, data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context) (Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupt persisted state is dropped rather than surfaced.
		_ = s.client.Del(ctx, sessionKey).Err()
		return Session{}, sentinel.ErrNotFound
	}
	return session, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}
