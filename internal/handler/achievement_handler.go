package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// AchievementHandler 成就请求处理器
type AchievementHandler struct {
	achievementSvc service.AchievementService
}

// NewAchievementHandler 创建成就处理器实例
func NewAchievementHandler(achievementSvc service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementSvc: achievementSvc}
}

// List 成就目录
// GET /api/achievements
func (h *AchievementHandler) List(c *gin.Context) {
	data, err := h.achievementSvc.List()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// My 我获得的成就
// GET /api/achievements/my
func (h *AchievementHandler) My(c *gin.Context) {
	data, err := h.achievementSvc.My(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Select 选择展示的称号，不传 achievement_id 表示取消
// PUT /api/achievements/my/select?achievement_id=xxx
func (h *AchievementHandler) Select(c *gin.Context) {
	var q request.SelectAchievementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.achievementSvc.Select(middleware.CurrentUserID(c), q.AchievementID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.MessageRespond{Message: "称号已更新"})
}

// Check 立即判定并授予新成就
// POST /api/achievements/check
func (h *AchievementHandler) Check(c *gin.Context) {
	HandleSuccess(c, h.achievementSvc.Check(middleware.CurrentUserID(c)))
}

// Create 管理员新增成就（201）
// POST /api/achievements
func (h *AchievementHandler) Create(c *gin.Context) {
	var req request.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.achievementSvc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Update 管理员修改成就
// PATCH /api/achievements/:id
func (h *AchievementHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.achievementSvc.Update(id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete 管理员删除成就
// DELETE /api/achievements/:id
func (h *AchievementHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.achievementSvc.Delete(id); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.MessageRespond{Message: "成就已删除"})
}
