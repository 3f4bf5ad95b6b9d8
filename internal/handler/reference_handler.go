package handler

import (
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler 乐器与用户类型，无需登录
type ReferenceHandler struct {
	referenceSvc service.ReferenceService
}

// NewReferenceHandler 创建参考数据处理器实例
func NewReferenceHandler(referenceSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceSvc: referenceSvc}
}

// Instruments GET /api/instruments
func (h *ReferenceHandler) Instruments(c *gin.Context) {
	data, err := h.referenceSvc.Instruments()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UserTypes GET /api/user-types
func (h *ReferenceHandler) UserTypes(c *gin.Context) {
	data, err := h.referenceSvc.UserTypes()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
