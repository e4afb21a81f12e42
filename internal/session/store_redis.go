package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists session slots in Redis with native TTL expiry.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore parses redisURL and verifies connectivity.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{rdb: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, sess Session) error {
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return s.rdb.Set(ctx, redisKeyPrefix+sess.Token, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("redis get session: %w", err)
	}
	sess, err := decodeSession(data)
	if err != nil {
		// Malformed slot: clear it so the user routes through login cleanly.
		_ = s.rdb.Del(ctx, redisKeyPrefix+token).Err()
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+token).Err()
}

// PurgeExpired is a no-op: Redis expires slots via key TTL.
func (s *RedisStore) PurgeExpired(ctx context.Context) (int, error) {
	return 0, ctx.Err()
}

var _ Store = (*RedisStore)(nil)
