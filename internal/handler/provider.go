// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 通过构造函数注入 Service 依赖
package handler

import (
	"github.com/Min-owo17/Mysic/internal/gateway/websocket"
	"github.com/Min-owo17/Mysic/internal/service"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Reference    *ReferenceHandler
	Practice     *PracticeHandler
	Achievement  *AchievementHandler
	Group        *GroupHandler
	Board        *BoardHandler
	Notification *NotificationHandler
	Support      *SupportHandler
	Health       *HealthHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// hub 用于通知的 WebSocket 连接，health 由调用方构造（依赖数据库与缓存）
func NewHandlers(svc *service.Services, hub *websocket.Hub, health *HealthHandler) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Reference:    NewReferenceHandler(svc.Reference),
		Practice:     NewPracticeHandler(svc.Practice),
		Achievement:  NewAchievementHandler(svc.Achievement),
		Group:        NewGroupHandler(svc.Group),
		Board:        NewBoardHandler(svc.Board),
		Notification: NewNotificationHandler(svc.Notification, hub),
		Support:      NewSupportHandler(svc.Support),
		Health:       health,
	}
}
