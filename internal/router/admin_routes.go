// Package router 提供 HTTP 路由注册
// 本文件定义管理员相关的路由
package router

import (
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理员相关路由（需要认证）
// 这些接口只能由管理员调用
func (rt *Router) RegisterAdminRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	adminGroup.Use(middleware.AdminOnly())
	{
		// ===== 用户管理 =====
		adminGroup.GET("/users", rt.handlers.User.ListUsers)
		adminGroup.PATCH("/users/:id", rt.handlers.User.AdminUpdateUser)
		adminGroup.PATCH("/users/:id/status", rt.handlers.User.AdminSetStatus) // 启用 / 停用
	}
}
