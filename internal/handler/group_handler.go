// Package handler 提供 HTTP 请求处理器
// 本文件处理群组相关的 API 请求
package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler 群组请求处理器
// 通过构造函数注入 GroupService
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建群组处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建群组，创建者自动成为成员
// POST /api/groups
// 请求体: request.CreateGroupRequest
// 响应: respond.GroupRespond（201）
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// ListGroups 公开群组与我加入的群组
// GET /api/groups?page=1&page_size=20&is_public=&search=
func (h *GroupHandler) ListGroups(c *gin.Context) {
	var q request.ListGroupsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.ListGroups(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroup GET /api/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.GetGroup(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateGroup 群主修改群组
// PUT /api/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.UpdateGroup(middleware.CurrentUserID(c), groupID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteGroup 群主解散群组
// DELETE /api/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.DeleteGroup(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinGroup 加入公开群组
// POST /api/groups/:id/join
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.JoinGroup(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveGroup 退出群组，群主不能退出
// DELETE /api/groups/:id/leave
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.LeaveGroup(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMembers GET /api/groups/:id/members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.ListMembers(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Invite 邀请用户（201）
// POST /api/groups/:id/invitations
func (h *GroupHandler) Invite(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.Invite(middleware.CurrentUserID(c), groupID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// ListInvitations 我收到的邀请
// GET /api/groups/invitations?status=pending
func (h *GroupHandler) ListInvitations(c *gin.Context) {
	var q request.ListInvitationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.ListInvitations(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AcceptInvitation POST /api/groups/invitations/:id/accept
func (h *GroupHandler) AcceptInvitation(c *gin.Context) {
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.AcceptInvitation(middleware.CurrentUserID(c), invitationID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeclineInvitation POST /api/groups/invitations/:id/decline
func (h *GroupHandler) DeclineInvitation(c *gin.Context) {
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.DeclineInvitation(middleware.CurrentUserID(c), invitationID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Statistics 群组练习统计
// GET /api/groups/:id/statistics?period=all|week
func (h *GroupHandler) Statistics(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q request.GroupStatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.Statistics(middleware.CurrentUserID(c), groupID, q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MemberStatistics 成员练习统计
// GET /api/groups/:id/members/statistics
func (h *GroupHandler) MemberStatistics(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.groupSvc.MemberStatistics(middleware.CurrentUserID(c), groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
