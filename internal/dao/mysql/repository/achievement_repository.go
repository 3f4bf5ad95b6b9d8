package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository 创建成就 Repository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// List 成就目录，按 ID 升序
func (r *achievementRepository) List() ([]model.Achievement, error) {
	var items []model.Achievement
	if err := r.db.Order("achievement_id ASC").Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "查询成就列表")
	}
	return items, nil
}

func (r *achievementRepository) FindByID(id uint) (*model.Achievement, error) {
	var a model.Achievement
	if err := r.db.First(&a, "achievement_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成就 id=%d", id)
	}
	return &a, nil
}

func (r *achievementRepository) Create(a *model.Achievement) error {
	if err := r.db.Create(a).Error; err != nil {
		return wrapDBError(err, "创建成就")
	}
	return nil
}

func (r *achievementRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Achievement{}).Where("achievement_id = ?", id).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新成就 id=%d", id)
	}
	return nil
}

// Delete 删除成就及获得记录，并清除引用它的称号
func (r *achievementRepository) Delete(id uint) error {
	if err := r.db.Model(&model.User{}).Unscoped().
		Where("selected_achievement_id = ?", id).
		Update("selected_achievement_id", nil).Error; err != nil {
		return wrapDBErrorf(err, "清除称号 achievement_id=%d", id)
	}
	if err := r.db.Where("achievement_id = ?", id).Delete(&model.UserAchievement{}).Error; err != nil {
		return wrapDBErrorf(err, "删除获得记录 achievement_id=%d", id)
	}
	if err := r.db.Delete(&model.Achievement{}, "achievement_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除成就 id=%d", id)
	}
	return nil
}

// ListByUser 用户获得的成就，按获得时间倒序
func (r *achievementRepository) ListByUser(userID uint) ([]model.UserAchievement, error) {
	var items []model.UserAchievement
	err := r.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询用户成就 user_id=%d", userID)
	}
	return items, nil
}

func (r *achievementRepository) Has(userID, achievementID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "检查成就获得记录")
	}
	return count > 0, nil
}

func (r *achievementRepository) Award(ua *model.UserAchievement) error {
	if err := r.db.Omit("Achievement").Create(ua).Error; err != nil {
		return wrapDBError(err, "写入成就获得记录")
	}
	return nil
}
