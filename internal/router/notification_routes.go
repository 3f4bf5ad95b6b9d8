package router

import (
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes 注册通知路由（需要认证）
// WebSocket 握手在 RegisterRoutes 中单独挂载
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notificationGroup := rg.Group("/notifications")
	{
		notificationGroup.GET("", rt.handlers.Notification.List)
		notificationGroup.PATCH("/:id/read", rt.handlers.Notification.MarkRead)
		notificationGroup.POST("/read-all", rt.handlers.Notification.MarkAllRead)
	}
}

// RegisterSupportRoutes 注册客服工单路由（需要认证）
func (rt *Router) RegisterSupportRoutes(rg *gin.RouterGroup) {
	supportGroup := rg.Group("/support")
	{
		supportGroup.POST("", rt.handlers.Support.Create)
		supportGroup.GET("/my", rt.handlers.Support.My)
	}

	adminGroup := rg.Group("/support/admin")
	adminGroup.Use(middleware.AdminOnly())
	{
		adminGroup.GET("/all", rt.handlers.Support.AdminList)
		adminGroup.POST("/:id/answer", rt.handlers.Support.Answer)
	}
}
