package request

// CreateAchievementRequest 管理员新增成就
type CreateAchievementRequest struct {
	Title          string  `json:"title" binding:"required,min=1,max=100"`
	Description    *string `json:"description" binding:"omitempty,max=500"`
	ConditionType  string  `json:"condition_type" binding:"required,oneof=practice_time consecutive_days instrument_count"`
	ConditionValue int64   `json:"condition_value" binding:"required,min=1"`
	IconURL        *string `json:"icon_url" binding:"omitempty,max=500"`
}

// UpdateAchievementRequest 管理员修改成就
type UpdateAchievementRequest struct {
	Title          *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description    *string `json:"description" binding:"omitempty,max=500"`
	ConditionType  *string `json:"condition_type" binding:"omitempty,oneof=practice_time consecutive_days instrument_count"`
	ConditionValue *int64  `json:"condition_value" binding:"omitempty,min=1"`
	IconURL        *string `json:"icon_url" binding:"omitempty,max=500"`
}

// SelectAchievementQuery 选择展示的称号，不传表示清除
type SelectAchievementQuery struct {
	AchievementID *uint `form:"achievement_id"`
}
