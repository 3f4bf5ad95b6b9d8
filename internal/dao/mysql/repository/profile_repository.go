package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料 Repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID 查询资料，带乐器与用户类型
func (r *profileRepository) FindByUserID(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.
		Preload("Instruments").
		Preload("Instruments.Instrument").
		Preload("UserTypes").
		Preload("UserTypes.UserType").
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询用户资料 user_id=%d", userID)
	}
	return &profile, nil
}

// Create 创建资料
func (r *profileRepository) Create(profile *model.UserProfile) error {
	if err := r.db.Omit("Instruments", "UserTypes").Create(profile).Error; err != nil {
		return wrapDBError(err, "创建用户资料")
	}
	return nil
}

// Updates 更新资料字段
func (r *profileRepository) Updates(profileID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.UserProfile{}).Where("profile_id = ?", profileID).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新用户资料 profile_id=%d", profileID)
	}
	return nil
}

// ReplaceInstruments 整体替换乐器列表
func (r *profileRepository) ReplaceInstruments(profileID uint, items []model.UserProfileInstrument) error {
	if err := r.db.Where("profile_id = ?", profileID).Delete(&model.UserProfileInstrument{}).Error; err != nil {
		return wrapDBErrorf(err, "清空乐器 profile_id=%d", profileID)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ProfileID = profileID
	}
	if err := r.db.Omit("Instrument").Create(&items).Error; err != nil {
		return wrapDBErrorf(err, "写入乐器 profile_id=%d", profileID)
	}
	return nil
}

// ReplaceUserTypes 整体替换用户类型
func (r *profileRepository) ReplaceUserTypes(profileID uint, items []model.UserProfileUserType) error {
	if err := r.db.Where("profile_id = ?", profileID).Delete(&model.UserProfileUserType{}).Error; err != nil {
		return wrapDBErrorf(err, "清空用户类型 profile_id=%d", profileID)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ProfileID = profileID
	}
	if err := r.db.Omit("UserType").Create(&items).Error; err != nil {
		return wrapDBErrorf(err, "写入用户类型 profile_id=%d", profileID)
	}
	return nil
}

// CountInstruments 用户登记的不同乐器数
func (r *profileRepository) CountInstruments(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserProfileInstrument{}).
		Joins("JOIN user_profiles ON user_profiles.profile_id = user_profile_instruments.profile_id").
		Where("user_profiles.user_id = ?", userID).
		Distinct("user_profile_instruments.instrument_id").
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计乐器数 user_id=%d", userID)
	}
	return count, nil
}

// FindByPrimaryInstrument 主乐器相同的其他未删除用户
func (r *profileRepository) FindByPrimaryInstrument(instrumentID, excludeUserID uint) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.
		Joins("JOIN user_profile_instruments upi ON upi.profile_id = user_profiles.profile_id").
		Joins("JOIN users ON users.user_id = user_profiles.user_id AND users.deleted_at IS NULL").
		Where("upi.instrument_id = ? AND upi.is_primary = ?", instrumentID, true).
		Where("user_profiles.user_id <> ?", excludeUserID).
		Preload("UserTypes").
		Find(&profiles).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询同乐器用户 instrument_id=%d", instrumentID)
	}
	return profiles, nil
}
