package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPracticeRoutes 注册练习记录、统计与录音路由（需要认证）
func (rt *Router) RegisterPracticeRoutes(rg *gin.RouterGroup) {
	practiceGroup := rg.Group("/practice")
	{
		practiceGroup.POST("/sessions", rt.handlers.Practice.StartSession)
		practiceGroup.GET("/sessions", rt.handlers.Practice.ListSessions)
		practiceGroup.GET("/sessions/active", rt.handlers.Practice.ActiveSession)
		practiceGroup.GET("/sessions/:id", rt.handlers.Practice.GetSession)
		practiceGroup.PUT("/sessions/:id", rt.handlers.Practice.EndSession) // 结束练习
		practiceGroup.DELETE("/sessions/:id", rt.handlers.Practice.DeleteSession)

		practiceGroup.GET("/statistics", rt.handlers.Practice.Statistics)
		practiceGroup.GET("/average-weekly", rt.handlers.Practice.WeeklyAverage)

		// ===== 录音 =====
		practiceGroup.POST("/sessions/:id/recordings", rt.handlers.Practice.UploadRecording)
		practiceGroup.GET("/sessions/:id/recordings", rt.handlers.Practice.ListRecordings)
		practiceGroup.DELETE("/recordings/:id", rt.handlers.Practice.DeleteRecording)
	}
}
