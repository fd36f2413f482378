package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so that multiple backend processes can
// serve the same conversations.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore with the given TTL. A TTL of 0 uses
// DefaultSessionTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "bot:session:" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, bool, error) {
	value, err := s.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}

	var session Session
	err = json.Unmarshal([]byte(value), &session)
	if err != nil {
		return Session{}, false, err
	}

	return session, true, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, session Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(id), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
