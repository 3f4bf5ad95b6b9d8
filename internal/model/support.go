package model

import "time"

// 客服工单类型与状态
const (
	SupportInquiry    = "inquiry"
	SupportSuggestion = "suggestion"

	SupportPending  = "pending"
	SupportAnswered = "answered"
)

// CustomerSupport 客服工单
type CustomerSupport struct {
	ID            uint       `gorm:"column:support_id;primaryKey"`
	UserID        uint       `gorm:"column:user_id;index;not null"`
	Type          string     `gorm:"column:type;type:varchar(20);not null"`
	Title         string     `gorm:"column:title;type:varchar(200);not null"`
	Content       string     `gorm:"column:content;type:text;not null"`
	Status        string     `gorm:"column:status;type:varchar(20);index;not null;default:pending"`
	AnswerContent *string    `gorm:"column:answer_content;type:text"`
	AnsweredAt    *time.Time `gorm:"column:answered_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`

	User User `gorm:"foreignKey:UserID"`
}

func (CustomerSupport) TableName() string {
	return "customer_support"
}
