package redis

import (
	"context"
	"time"
)

// StatisticsCache 基于 Redis 的聚合结果缓存，实现 service.StatisticsCache
type StatisticsCache struct{}

func NewStatisticsCache() *StatisticsCache {
	return &StatisticsCache{}
}

func (c *StatisticsCache) Get(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (c *StatisticsCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return SetValue(ctx, key, value, ttl)
}
