// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/Min-owo17/Mysic/internal/handler"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器
type Router struct {
	handlers *handler.Handlers
	auth     *middleware.Authenticator
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers, auth *middleware.Authenticator) *Router {
	return &Router{handlers: handlers, auth: auth}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	r.GET("/", rt.handlers.Health.Root)
	r.GET("/health", rt.handlers.Health.Health)

	api := r.Group("/api")

	// 公开接口
	rt.RegisterAuthRoutes(api)
	rt.RegisterReferenceRoutes(api)

	// WebSocket 握手可用 query 传 Token，单独挂载
	api.GET("/notifications/ws", rt.auth.WsJWTAuth(), rt.handlers.Notification.Ws)

	// 需要认证的接口
	authed := api.Group("")
	authed.Use(rt.auth.JWTAuth())
	{
		rt.RegisterSessionRoutes(authed)
		rt.RegisterUserRoutes(authed)
		rt.RegisterPracticeRoutes(authed)
		rt.RegisterBoardRoutes(authed)
		rt.RegisterGroupRoutes(authed)
		rt.RegisterAchievementRoutes(authed)
		rt.RegisterNotificationRoutes(authed)
		rt.RegisterSupportRoutes(authed)
		rt.RegisterAdminRoutes(authed)
	}
}
