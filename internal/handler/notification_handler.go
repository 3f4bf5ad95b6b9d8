package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/gateway/websocket"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知查询与 WebSocket 推送
type NotificationHandler struct {
	notificationSvc service.NotificationService
	hub             *websocket.Hub
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, hub: hub}
}

// List 我的通知，附带未读数
// GET /api/notifications?page=&page_size=
func (h *NotificationHandler) List(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.notificationSvc.List(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记已读，仅接收者可操作
// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.notificationSvc.MarkRead(middleware.CurrentUserID(c), notificationID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkAllRead POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	data, err := h.notificationSvc.MarkAllRead(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Ws 升级为 WebSocket，新通知实时推送给在线用户
// GET /api/notifications/ws?token=xxx
func (h *NotificationHandler) Ws(c *gin.Context) {
	h.hub.Serve(c, middleware.CurrentUserID(c))
}
