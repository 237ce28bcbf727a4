package repo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "rmt:"

// RedisTokenStore 令牌跨进程、跨重启仍有效
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, userID uint64, ttl time.Duration) error {
	return s.rdb.Set(ctx, tokenKeyPrefix+token, strconv.FormatUint(userID, 10), ttl).Err()
}

// Consume GETDEL 保证读删一步完成，单次有效
func (s *RedisTokenStore) Consume(ctx context.Context, token string) (uint64, error) {
	v, err := s.rdb.GetDel(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(v, 10, 64)
}
