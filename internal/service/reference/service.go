// Package reference 提供乐器、用户类型等参考数据，带缓存
package reference

import (
	"context"
	"encoding/json"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

type referenceService struct {
	repos *repository.Repositories
	cache redis.AsyncCacheService
}

// NewReferenceService 构造函数
func NewReferenceService(repos *repository.Repositories, cache redis.AsyncCacheService) *referenceService {
	return &referenceService{repos: repos, cache: cache}
}

// Instruments 乐器列表，按 display_order 排序
func (s *referenceService) Instruments() ([]model.Instrument, error) {
	return cached(s.cache, redis.KeyInstruments, s.repos.Reference.ListInstruments)
}

// UserTypes 用户类型列表，按 display_order 排序
func (s *referenceService) UserTypes() ([]model.UserType, error) {
	return cached(s.cache, redis.KeyUserTypes, s.repos.Reference.ListUserTypes)
}

// Refresh 清除乐器、用户类型与成就列表缓存，下次读取时回源
func (s *referenceService) Refresh(ctx context.Context) error {
	if err := s.cache.DeleteByPattern(ctx, redis.KeyReferencePattern); err != nil {
		zap.L().Error("clear reference cache error", zap.Error(err))
		return err
	}
	return nil
}

// cached 先读缓存，未命中时查库并异步回写
func cached[T any](cache redis.AsyncCacheService, key string, load func() ([]T, error)) ([]T, error) {
	rspString, err := cache.Get(context.Background(), key)
	if err == nil && rspString != "" {
		var items []T
		if err := json.Unmarshal([]byte(rspString), &items); err == nil {
			return items, nil
		}
		zap.L().Warn("unmarshal reference cache failed, fallback to DB", zap.String("key", key), zap.Error(err))
	} else if err != nil {
		zap.L().Error("redis get error", zap.Error(err))
	}

	items, err := load()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if items == nil {
		items = make([]T, 0)
	}

	cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(items)
		if err != nil {
			zap.L().Error("marshal reference data error", zap.Error(err))
			return
		}
		if err := cache.Set(context.Background(), key, string(rspBytes), constants.REFERENCE_CACHE_TTL); err != nil {
			zap.L().Error("set reference cache error", zap.Error(err))
		}
	})
	return items, nil
}
