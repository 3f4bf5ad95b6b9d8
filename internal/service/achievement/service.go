// Package achievement 实现成就目录、称号选择与成就判定
package achievement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/internal/service/practice"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

// achievementService 成就业务实现
type achievementService struct {
	repos *repository.Repositories
	cache redis.AsyncCacheService
	now   func() time.Time
}

// NewAchievementService 构造函数
func NewAchievementService(repos *repository.Repositories, cache redis.AsyncCacheService) *achievementService {
	return &achievementService{
		repos: repos,
		cache: cache,
		now:   time.Now,
	}
}

// List 成就目录，优先读缓存
func (s *achievementService) List() (*respond.AchievementListRespond, error) {
	items, err := s.catalogue()
	if err != nil {
		return nil, err
	}
	return &respond.AchievementListRespond{Achievements: items, Total: len(items)}, nil
}

func (s *achievementService) catalogue() ([]model.Achievement, error) {
	rspString, err := s.cache.Get(context.Background(), redis.KeyAchievements)
	if err == nil && rspString != "" {
		var items []model.Achievement
		if err := json.Unmarshal([]byte(rspString), &items); err == nil {
			return items, nil
		}
		zap.L().Warn("unmarshal achievement cache failed, fallback to DB", zap.Error(err))
	} else if err != nil {
		zap.L().Error("redis get error", zap.Error(err))
	}

	items, err := s.repos.Achievement.List()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if items == nil {
		items = make([]model.Achievement, 0)
	}

	s.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(items)
		if err != nil {
			zap.L().Error("marshal achievements error", zap.Error(err))
			return
		}
		if err := s.cache.Set(context.Background(), redis.KeyAchievements, string(rspBytes), constants.REFERENCE_CACHE_TTL); err != nil {
			zap.L().Error("set achievement cache error", zap.Error(err))
		}
	})
	return items, nil
}

func (s *achievementService) invalidate() {
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), redis.KeyAchievements); err != nil {
			zap.L().Error("delete achievement cache error", zap.Error(err))
		}
	})
}

// My 我获得的成就，按获得时间倒序
func (s *achievementService) My(userID uint) (*respond.UserAchievementListRespond, error) {
	items, err := s.repos.Achievement.ListByUser(userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.UserAchievementListRespond{
		UserAchievements: make([]respond.UserAchievementRespond, 0, len(items)),
		Total:            len(items),
	}
	for _, ua := range items {
		rsp.UserAchievements = append(rsp.UserAchievements, respond.UserAchievementRespond{
			UserAchievementID: ua.ID,
			UserID:            ua.UserID,
			AchievementID:     ua.AchievementID,
			EarnedAt:          ua.EarnedAt,
			Achievement:       ua.Achievement,
		})
	}
	return rsp, nil
}

// Select 设置展示的称号，achievementID 为 nil 时清除
func (s *achievementService) Select(userID uint, achievementID *uint) error {
	if achievementID != nil {
		held, err := s.repos.Achievement.Has(userID, *achievementID)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if !held {
			return errorx.New(errorx.CodeBadRequest, "尚未获得该成就")
		}
	}
	if err := s.repos.User.Updates(userID, map[string]any{"selected_achievement_id": achievementID}); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// Check 手动触发成就判定
func (s *achievementService) Check(userID uint) *respond.CheckAchievementsRespond {
	earned := s.Evaluate(userID)
	return &respond.CheckAchievementsRespond{NewAchievements: earned, Total: len(earned)}
}

// Evaluate 判定并发放成就，返回本次新获得的成就
// 在一个事务内完成，出错时整体回滚并返回空列表
func (s *achievementService) Evaluate(userID uint) []model.Achievement {
	earned := make([]model.Achievement, 0)
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		catalogue, err := tx.Achievement.List()
		if err != nil {
			return err
		}
		if len(catalogue) == 0 {
			return nil
		}

		var totalSeconds int64
		totals, err := tx.Practice.Totals([]uint{userID}, "")
		if err != nil {
			return err
		}
		if len(totals) > 0 {
			totalSeconds = totals[0].TotalSeconds
		}
		streak, err := practice.Streak(tx.Practice, userID, s.now())
		if err != nil {
			return err
		}
		instruments, err := tx.Profile.CountInstruments(userID)
		if err != nil {
			return err
		}

		for _, a := range catalogue {
			if !reached(a, totalSeconds, int64(streak), instruments) {
				continue
			}
			held, err := tx.Achievement.Has(userID, a.ID)
			if err != nil {
				return err
			}
			if held {
				continue
			}
			if err := tx.Achievement.Award(&model.UserAchievement{
				UserID:        userID,
				AchievementID: a.ID,
				EarnedAt:      s.now(),
			}); err != nil {
				return err
			}
			earned = append(earned, a)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("evaluate achievements", zap.Uint("user_id", userID), zap.Error(err))
		return make([]model.Achievement, 0)
	}
	if len(earned) > 0 {
		zap.L().Info("achievements earned", zap.Uint("user_id", userID), zap.Int("count", len(earned)))
	}
	return earned
}

func reached(a model.Achievement, totalSeconds, streak, instruments int64) bool {
	switch a.ConditionType {
	case model.ConditionPracticeTime:
		return totalSeconds >= a.ConditionValue
	case model.ConditionConsecutiveDays:
		return streak >= a.ConditionValue
	case model.ConditionInstrumentCount:
		return instruments >= a.ConditionValue
	default:
		return false
	}
}

// ==================== 管理员 ====================

func (s *achievementService) titleTaken(title string, excludeID uint) (bool, error) {
	items, err := s.repos.Achievement.List()
	if err != nil {
		return false, err
	}
	for _, a := range items {
		if a.Title == title && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// Create 新增成就
func (s *achievementService) Create(req request.CreateAchievementRequest) (*model.Achievement, error) {
	taken, err := s.titleTaken(req.Title, 0)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if taken {
		return nil, errorx.New(errorx.CodeBadRequest, "成就名称已存在")
	}
	a := &model.Achievement{
		Title:          req.Title,
		Description:    req.Description,
		ConditionType:  req.ConditionType,
		ConditionValue: req.ConditionValue,
		IconURL:        req.IconURL,
	}
	if err := s.repos.Achievement.Create(a); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	s.invalidate()
	return a, nil
}

// Update 修改成就
func (s *achievementService) Update(id uint, req request.UpdateAchievementRequest) (*model.Achievement, error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if req.Title != nil {
		taken, err := s.titleTaken(*req.Title, id)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if taken {
			return nil, errorx.New(errorx.CodeBadRequest, "成就名称已存在")
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ConditionType != nil {
		fields["condition_type"] = *req.ConditionType
	}
	if req.ConditionValue != nil {
		fields["condition_value"] = *req.ConditionValue
	}
	if req.IconURL != nil {
		fields["icon_url"] = *req.IconURL
	}
	if err := s.repos.Achievement.Updates(id, fields); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	s.invalidate()
	return s.find(id)
}

// Delete 删除成就及获得记录
func (s *achievementService) Delete(id uint) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		return tx.Achievement.Delete(id)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	s.invalidate()
	return nil
}

func (s *achievementService) find(id uint) (*model.Achievement, error) {
	a, err := s.repos.Achievement.FindByID(id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "成就不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return a, nil
}
