package model

import "time"

// 通知类型
const (
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationReply         = "reply"
	NotificationExcellentPost = "excellent_post"
	NotificationReportHidden  = "report_hidden"
)

// Notification 站内通知
type Notification struct {
	ID        uint      `gorm:"column:notification_id;primaryKey"`
	UserID    uint      `gorm:"column:user_id;index:idx_notification_user_read;not null;comment:接收者"`
	SenderID  *uint     `gorm:"column:sender_id;comment:触发者"`
	Type      string    `gorm:"column:type;type:varchar(30);not null"`
	PostID    *uint     `gorm:"column:post_id"`
	CommentID *uint     `gorm:"column:comment_id"`
	Content   string    `gorm:"column:content;type:varchar(500);not null"`
	IsRead    bool      `gorm:"column:is_read;index:idx_notification_user_read;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Sender *User `gorm:"foreignKey:SenderID"`
}

func (Notification) TableName() string {
	return "notifications"
}
