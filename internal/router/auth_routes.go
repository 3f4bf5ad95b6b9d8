// Package router 提供 HTTP 路由注册
// 本文件定义认证与参考数据路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册、登录（无需认证）
func (rt *Router) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register) // 注册
		authGroup.POST("/login", rt.handlers.Auth.Login)       // 登录
	}
}

// RegisterSessionRoutes 登出与当前用户（需要认证）
func (rt *Router) RegisterSessionRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/logout", rt.handlers.Auth.Logout)
		authGroup.GET("/me", rt.handlers.Auth.Me)
	}
}

// RegisterReferenceRoutes 乐器与用户类型（无需认证）
func (rt *Router) RegisterReferenceRoutes(rg *gin.RouterGroup) {
	rg.GET("/instruments", rt.handlers.Reference.Instruments)
	rg.GET("/user-types", rt.handlers.Reference.UserTypes)
}
