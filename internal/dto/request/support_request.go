package request

// CreateSupportRequest 提交咨询或建议
type CreateSupportRequest struct {
	Type    string `json:"type" binding:"required,oneof=inquiry suggestion"`
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1"`
}

// AnswerSupportRequest 管理员回复
type AnswerSupportRequest struct {
	AnswerContent string `json:"answer_content" binding:"required,min=1"`
}

// AdminSupportQuery 管理员工单列表
type AdminSupportQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending answered"`
}
