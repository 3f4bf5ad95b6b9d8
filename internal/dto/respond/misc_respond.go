package respond

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/model"
)

// AchievementListRespond 成就列表
type AchievementListRespond struct {
	Achievements []model.Achievement `json:"achievements"`
	Total        int                 `json:"total"`
}

// UserAchievementRespond 获得的成就
type UserAchievementRespond struct {
	UserAchievementID uint              `json:"user_achievement_id"`
	UserID            uint              `json:"user_id"`
	AchievementID     uint              `json:"achievement_id"`
	EarnedAt          time.Time         `json:"earned_at"`
	Achievement       model.Achievement `json:"achievement"`
}

// UserAchievementListRespond 我的成就
type UserAchievementListRespond struct {
	UserAchievements []UserAchievementRespond `json:"user_achievements"`
	Total            int                      `json:"total"`
}

// CheckAchievementsRespond 本次新获得的成就
type CheckAchievementsRespond struct {
	NewAchievements []model.Achievement `json:"new_achievements"`
	Total           int                 `json:"total"`
}

// NotificationRespond 通知，也是 WebSocket 推送的消息体
type NotificationRespond struct {
	NotificationID uint      `json:"notification_id"`
	ReceiverID     uint      `json:"receiver_id"`
	SenderID       *uint     `json:"sender_id"`
	SenderNickname *string   `json:"sender_nickname"`
	Type           string    `json:"type"`
	PostID         *uint     `json:"post_id"`
	CommentID      *uint     `json:"comment_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationListRespond 通知列表
type NotificationListRespond struct {
	Notifications []NotificationRespond `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	PageInfo
}

// ReadAllRespond 全部已读
type ReadAllRespond struct {
	Updated int64 `json:"updated"`
}

// SupportRespond 客服工单
type SupportRespond struct {
	SupportID     uint              `json:"support_id"`
	UserID        uint              `json:"user_id"`
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Status        string            `json:"status"`
	AnswerContent *string           `json:"answer_content"`
	AnsweredAt    *time.Time        `json:"answered_at"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	User          *UserBriefRespond `json:"user"`
}

// SupportListRespond 工单列表
type SupportListRespond struct {
	Supports []SupportRespond `json:"supports"`
	PageInfo
}

// NewNotificationRespond 转换通知，Sender 可为空
func NewNotificationRespond(n *model.Notification) NotificationRespond {
	rsp := NotificationRespond{
		NotificationID: n.ID,
		ReceiverID:     n.UserID,
		SenderID:       n.SenderID,
		Type:           n.Type,
		PostID:         n.PostID,
		CommentID:      n.CommentID,
		Content:        n.Content,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
	if n.Sender != nil {
		nickname := n.Sender.Nickname
		rsp.SenderNickname = &nickname
	}
	return rsp
}
