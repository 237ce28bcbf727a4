package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:"

// RedisStore 多进程部署用的会话后端
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Set(ctx context.Context, sid, uuid string, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+sid, uuid, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string) (string, error) {
	v, err := s.rdb.Get(ctx, redisKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+sid).Err()
}
