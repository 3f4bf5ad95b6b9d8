package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户资料相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/users")
	{
		userGroup.GET("/me", rt.handlers.User.GetMe)
		userGroup.PUT("/me", rt.handlers.User.UpdateMe)
		userGroup.PUT("/me/instruments", rt.handlers.User.UpdateInstruments)
		userGroup.PUT("/me/user-types", rt.handlers.User.UpdateUserTypes)
		userGroup.PUT("/me/password", rt.handlers.User.ChangePassword)
		userGroup.PUT("/me/email", rt.handlers.User.ChangeEmail)
		userGroup.DELETE("/me", rt.handlers.User.DeleteMe) // 软删除并停用
		userGroup.GET("/search", rt.handlers.User.Search)
	}
}
