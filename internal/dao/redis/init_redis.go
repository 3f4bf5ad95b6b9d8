// Package redis 提供 Redis 缓存操作的封装
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init 根据配置创建缓存服务
// 未启用时返回 NopCache
func Init(conf *config.RedisConfig) (AsyncCacheService, error) {
	if conf == nil || !conf.Enabled {
		return NewNopCache(), nil
	}

	addr := conf.Host + ":" + strconv.Itoa(conf.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: conf.Workers,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	return NewRedisCache(client, conf.Workers, conf.TaskChanSize), nil
}
