// Package router 提供 HTTP 路由注册
// 本文件定义群组相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册群组相关路由（需要认证）
// 包括群组管理、成员、邀请与练习统计
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/groups")
	{
		// ===== 群组基本操作 =====
		groupGroup.GET("", rt.handlers.Group.ListGroups)
		groupGroup.POST("", rt.handlers.Group.CreateGroup)
		groupGroup.GET("/:id", rt.handlers.Group.GetGroup)
		groupGroup.PUT("/:id", rt.handlers.Group.UpdateGroup)    // 群主
		groupGroup.DELETE("/:id", rt.handlers.Group.DeleteGroup) // 群主

		// ===== 成员 =====
		groupGroup.POST("/:id/join", rt.handlers.Group.JoinGroup)
		groupGroup.DELETE("/:id/leave", rt.handlers.Group.LeaveGroup)
		groupGroup.GET("/:id/members", rt.handlers.Group.ListMembers)

		// ===== 邀请 =====
		groupGroup.POST("/:id/invitations", rt.handlers.Group.Invite)
		groupGroup.GET("/invitations", rt.handlers.Group.ListInvitations)
		groupGroup.POST("/invitations/:id/accept", rt.handlers.Group.AcceptInvitation)
		groupGroup.POST("/invitations/:id/decline", rt.handlers.Group.DeclineInvitation)

		// ===== 统计 =====
		groupGroup.GET("/:id/statistics", rt.handlers.Group.Statistics)
		groupGroup.GET("/:id/members/statistics", rt.handlers.Group.MemberStatistics)
	}
}
