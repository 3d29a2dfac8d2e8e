package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetValue 获取字符串值，键不存在时返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetValue 写入字符串值并设置过期时间
func SetValue(ctx context.Context, key string, value string, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}
