package redis

import (
	"context"
	"time"
)

// NopCache 未启用 Redis 时使用，读永远未命中
type NopCache struct{}

func NewNopCache() NopCache { return NopCache{} }

func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }

func (NopCache) Get(context.Context, string) (string, error) { return "", nil }

func (NopCache) Delete(context.Context, string) error { return nil }

func (NopCache) DeleteByPattern(context.Context, string) error { return nil }

func (NopCache) Ping(context.Context) error { return nil }

// SubmitTask 同步执行
func (NopCache) SubmitTask(action func()) {
	if action != nil {
		action()
	}
}

func (NopCache) Close() error { return nil }

var _ AsyncCacheService = NopCache{}
