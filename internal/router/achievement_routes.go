package router

import (
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAchievementRoutes 注册成就路由（需要认证，增删改仅管理员）
func (rt *Router) RegisterAchievementRoutes(rg *gin.RouterGroup) {
	achievementGroup := rg.Group("/achievements")
	{
		achievementGroup.GET("", rt.handlers.Achievement.List)
		achievementGroup.GET("/my", rt.handlers.Achievement.My)
		achievementGroup.PUT("/my/select", rt.handlers.Achievement.Select)
		achievementGroup.POST("/check", rt.handlers.Achievement.Check)

		admin := middleware.AdminOnly()
		achievementGroup.POST("", admin, rt.handlers.Achievement.Create)
		achievementGroup.PATCH("/:id", admin, rt.handlers.Achievement.Update)
		achievementGroup.DELETE("/:id", admin, rt.handlers.Achievement.Delete)
	}
}
