package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps drafts in Redis with a per-key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a draft store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func draftKey(sessionID, form string) string {
	return fmt.Sprintf("draft:%s:%s", sessionID, form)
}

func (s *RedisStore) Get(ctx context.Context, sessionID, form string) ([]byte, error) {
	payload, err := s.client.Get(ctx, draftKey(sessionID, form)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return payload, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID, form string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, draftKey(sessionID, form), payload, ttl).Err(); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, form string) error {
	if err := s.client.Del(ctx, draftKey(sessionID, form)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
