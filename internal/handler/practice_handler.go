// Package handler 提供 HTTP 请求处理器
// 本文件处理练习记录与录音相关的 API 请求
package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// PracticeHandler 练习请求处理器
type PracticeHandler struct {
	practiceSvc service.PracticeService
}

// NewPracticeHandler 创建练习处理器实例
func NewPracticeHandler(practiceSvc service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceSvc: practiceSvc}
}

// StartSession 开始练习
// POST /api/practice/sessions
// 请求体: request.CreateSessionRequest
// 响应: respond.SessionRespond（201）
func (h *PracticeHandler) StartSession(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.practiceSvc.StartSession(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// EndSession 结束练习
// PUT /api/practice/sessions/:id
// 请求体: request.EndSessionRequest，未传 actual_play_time 时按起止时间计算
func (h *PracticeHandler) EndSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.practiceSvc.EndSession(middleware.CurrentUserID(c), sessionID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListSessions 练习记录列表
// GET /api/practice/sessions?start_date=&end_date=&instrument_id=&user_id=
func (h *PracticeHandler) ListSessions(c *gin.Context) {
	var q request.ListSessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.practiceSvc.ListSessions(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ActiveSession 进行中的练习，没有时 data 为 null
// GET /api/practice/sessions/active
func (h *PracticeHandler) ActiveSession(c *gin.Context) {
	data, err := h.practiceSvc.ActiveSession(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetSession GET /api/practice/sessions/:id
func (h *PracticeHandler) GetSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.practiceSvc.GetSession(middleware.CurrentUserID(c), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteSession DELETE /api/practice/sessions/:id（204）
func (h *PracticeHandler) DeleteSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.practiceSvc.DeleteSession(middleware.CurrentUserID(c), sessionID); err != nil {
		HandleError(c, err)
		return
	}
	HandleNoContent(c)
}

// Statistics 个人练习统计
// GET /api/practice/statistics
func (h *PracticeHandler) Statistics(c *gin.Context) {
	data, err := h.practiceSvc.Statistics(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// WeeklyAverage 同类用户的周平均练习时间
// GET /api/practice/average-weekly?start_date=&end_date=
func (h *PracticeHandler) WeeklyAverage(c *gin.Context) {
	var q request.WeeklyAverageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.practiceSvc.WeeklyAverage(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UploadRecording 上传录音
// POST /api/practice/sessions/:id/recordings
// 表单字段: file
func (h *PracticeHandler) UploadRecording(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "请选择要上传的录音文件"))
		return
	}
	data, err := h.practiceSvc.UploadRecording(middleware.CurrentUserID(c), sessionID, file)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// ListRecordings GET /api/practice/sessions/:id/recordings
func (h *PracticeHandler) ListRecordings(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.practiceSvc.ListRecordings(middleware.CurrentUserID(c), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteRecording DELETE /api/practice/recordings/:id（204）
func (h *PracticeHandler) DeleteRecording(c *gin.Context) {
	recordingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.practiceSvc.DeleteRecording(middleware.CurrentUserID(c), recordingID); err != nil {
		HandleError(c, err)
		return
	}
	HandleNoContent(c)
}
