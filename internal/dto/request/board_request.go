package request

// CreatePostRequest 发帖
type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,min=1,max=300"`
	Content    string   `json:"content" binding:"required,min=1"`
	Category   string   `json:"category" binding:"omitempty,oneof=general tip question free"`
	ManualTags []string `json:"manual_tags" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdatePostRequest 修改帖子，nil 字段不修改
type UpdatePostRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=1,max=300"`
	Content    *string  `json:"content" binding:"omitempty,min=1"`
	Category   *string  `json:"category" binding:"omitempty,oneof=general tip question free"`
	ManualTags []string `json:"manual_tags" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// ListPostsQuery 帖子列表
type ListPostsQuery struct {
	PageQuery
	Category string `form:"category" binding:"omitempty,oneof=general tip question free"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
}

// ReportPostRequest 举报帖子
type ReportPostRequest struct {
	Reason  string  `json:"reason" binding:"required,min=1,max=100"`
	Details *string `json:"details" binding:"omitempty,max=2000"`
}

// CreateCommentRequest 发表评论或回复
type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,min=1"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// UpdateCommentRequest 修改评论
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// AdminListPostsQuery 管理员帖子列表
type AdminListPostsQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=all visible hidden deleted"`
	Search string `form:"search"`
}

// AdminPostStatusRequest 管理员隐藏或恢复帖子
type AdminPostStatusRequest struct {
	IsHidden *bool `json:"is_hidden" binding:"required"`
}
