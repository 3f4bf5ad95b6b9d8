// Package handler 提供 HTTP 请求处理器
// 本文件处理认证相关的 API 请求
package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证请求处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
// POST /api/auth/register
// 请求体: request.RegisterRequest
// 响应: respond.AuthRespond（201）
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Login 邮箱密码登录
// POST /api/auth/login
// 请求体: request.LoginRequest
// 响应: respond.AuthRespond
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Logout 登出，Token 由客户端丢弃
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	HandleSuccess(c, respond.MessageRespond{Message: "已退出登录"})
}

// Me 当前登录用户
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	HandleSuccess(c, h.authSvc.Me(middleware.CurrentUser(c)))
}
