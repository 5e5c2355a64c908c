package cart

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisSlots stores each session's cart under sf:cart:<session>.
type RedisSlots struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisSlots builds the factory; ttl of zero keeps slots until cleared.
func NewRedisSlots(client *pkgredis.Client, ttl time.Duration) *RedisSlots {
	return &RedisSlots{client: client, ttl: ttl}
}

func (r *RedisSlots) Slot(sessionID string) Slot {
	return &redisSlot{client: r.client, key: r.client.CartKey(sessionID), ttl: r.ttl}
}

type redisSlot struct {
	client redisKV
	key    string
	ttl    time.Duration
}

func (s *redisSlot) Load(ctx context.Context) (string, bool, error) {
	payload, err := s.client.Get(ctx, s.key)
	if errors.Is(err, pkgredis.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (s *redisSlot) Save(ctx context.Context, payload string) error {
	return s.client.Set(ctx, s.key, payload, s.ttl)
}

func (s *redisSlot) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key)
}
