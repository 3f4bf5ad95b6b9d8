package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// SupportHandler 客服工单
type SupportHandler struct {
	supportSvc service.SupportService
}

// NewSupportHandler 创建工单处理器实例
func NewSupportHandler(supportSvc service.SupportService) *SupportHandler {
	return &SupportHandler{supportSvc: supportSvc}
}

// Create 提交咨询或建议
// POST /api/support
func (h *SupportHandler) Create(c *gin.Context) {
	var req request.CreateSupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.Create(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// My GET /api/support/my
func (h *SupportHandler) My(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.My(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminList GET /api/support/admin/all?status=pending|answered
func (h *SupportHandler) AdminList(c *gin.Context) {
	var q request.AdminSupportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.AdminList(q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Answer 管理员回复，重复回复会覆盖
// POST /api/support/admin/:id/answer
func (h *SupportHandler) Answer(c *gin.Context) {
	supportID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AnswerSupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.Answer(middleware.CurrentUserID(c), supportID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
