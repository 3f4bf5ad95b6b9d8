package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// ListUsers 管理员用户列表
// GET /api/admin/users?page=1&page_size=20&search=&is_active=
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q request.AdminUserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.ListUsers(q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminUpdateUser 管理员修改用户
// PATCH /api/admin/users/:id
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.AdminUpdateUser(middleware.CurrentUserID(c), userID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminSetStatus 启用或停用用户
// PATCH /api/admin/users/:id/status
func (h *UserHandler) AdminSetStatus(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AdminUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.AdminSetStatus(middleware.CurrentUserID(c), userID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
