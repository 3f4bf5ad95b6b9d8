package router

import (
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBoardRoutes 注册讨论区路由（需要认证）
func (rt *Router) RegisterBoardRoutes(rg *gin.RouterGroup) {
	boardGroup := rg.Group("/board")
	{
		// ===== 帖子 =====
		boardGroup.GET("/posts", rt.handlers.Board.ListPosts)
		boardGroup.POST("/posts", rt.handlers.Board.CreatePost)
		boardGroup.GET("/posts/:id", rt.handlers.Board.GetPost)
		boardGroup.PUT("/posts/:id", rt.handlers.Board.UpdatePost)
		boardGroup.DELETE("/posts/:id", rt.handlers.Board.DeletePost)

		// ===== 互动 =====
		boardGroup.POST("/posts/:id/likes", rt.handlers.Board.TogglePostLike)
		boardGroup.POST("/posts/:id/bookmarks", rt.handlers.Board.ToggleBookmark)
		boardGroup.GET("/bookmarks", rt.handlers.Board.ListBookmarks)
		boardGroup.POST("/posts/:id/report", rt.handlers.Board.ReportPost)

		// ===== 评论 =====
		boardGroup.GET("/posts/:id/comments", rt.handlers.Board.ListComments)
		boardGroup.POST("/posts/:id/comments", rt.handlers.Board.CreateComment)
		boardGroup.PUT("/comments/:id", rt.handlers.Board.UpdateComment)
		boardGroup.DELETE("/comments/:id", rt.handlers.Board.DeleteComment)
		boardGroup.POST("/comments/:id/likes", rt.handlers.Board.ToggleCommentLike)
	}

	adminGroup := rg.Group("/board/admin")
	adminGroup.Use(middleware.AdminOnly())
	{
		adminGroup.GET("/posts", rt.handlers.Board.AdminListPosts)
		adminGroup.GET("/posts/:id", rt.handlers.Board.AdminGetPost)
		adminGroup.PATCH("/posts/:id/status", rt.handlers.Board.AdminSetPostStatus)
		adminGroup.DELETE("/posts/:id", rt.handlers.Board.AdminDeletePost)
	}
}
