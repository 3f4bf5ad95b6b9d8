package model

import "time"

// 成就条件类型
const (
	ConditionPracticeTime    = "practice_time"
	ConditionConsecutiveDays = "consecutive_days"
	ConditionInstrumentCount = "instrument_count"
)

// Achievement 成就定义
type Achievement struct {
	ID             uint      `gorm:"column:achievement_id;primaryKey" json:"achievement_id"`
	Title          string    `gorm:"column:title;type:varchar(100);uniqueIndex;not null" json:"title"`
	Description    *string   `gorm:"column:description;type:text" json:"description"`
	ConditionType  string    `gorm:"column:condition_type;type:varchar(30);index;not null" json:"condition_type"`
	ConditionValue int64     `gorm:"column:condition_value;not null" json:"condition_value"`
	IconURL        *string   `gorm:"column:icon_url;type:varchar(500)" json:"icon_url"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 获得记录，只增不删
type UserAchievement struct {
	ID            uint      `gorm:"column:user_achievement_id;primaryKey"`
	UserID        uint      `gorm:"column:user_id;uniqueIndex:uk_user_achievement;not null"`
	AchievementID uint      `gorm:"column:achievement_id;uniqueIndex:uk_user_achievement;not null"`
	EarnedAt      time.Time `gorm:"column:earned_at;not null"`

	Achievement Achievement `gorm:"foreignKey:AchievementID"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
