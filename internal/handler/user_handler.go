// Package handler 提供 HTTP 请求处理器
// 本文件处理用户资料相关的 API 请求
package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器，同时处理管理员的用户管理
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetMe 当前用户详情（含资料、乐器、用户类型）
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	data, err := h.userSvc.GetMe(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateMe 更新昵称、头像、简介、标签
// PUT /api/users/me
// 请求体: request.UpdateProfileRequest
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateProfile(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateInstruments 替换乐器列表
// PUT /api/users/me/instruments
func (h *UserHandler) UpdateInstruments(c *gin.Context) {
	var req request.UpdateInstrumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateInstruments(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserTypes 替换用户类型
// PUT /api/users/me/user-types
func (h *UserHandler) UpdateUserTypes(c *gin.Context) {
	var req request.UpdateUserTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateUserTypes(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ChangePassword 修改密码
// PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.ChangePassword(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ChangeEmail 修改邮箱
// PUT /api/users/me/email
func (h *UserHandler) ChangeEmail(c *gin.Context) {
	var req request.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.ChangeEmail(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteMe 注销账号
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	data, err := h.userSvc.DeleteMe(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Search 按昵称或用户码搜索
// GET /api/users/search?query=xxx&limit=10
func (h *UserHandler) Search(c *gin.Context) {
	var q request.SearchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Search(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
