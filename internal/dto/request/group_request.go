package request

// CreateGroupRequest 创建群组
type CreateGroupRequest struct {
	GroupName   string  `json:"group_name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPublic    bool    `json:"is_public"`
	MaxMembers  *int    `json:"max_members" binding:"omitempty,min=1,max=1000"`
}

// UpdateGroupRequest 修改群组，nil 字段不修改
type UpdateGroupRequest struct {
	GroupName   *string `json:"group_name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPublic    *bool   `json:"is_public"`
	MaxMembers  *int    `json:"max_members" binding:"omitempty,min=1,max=1000"`
}

// ListGroupsQuery 群组列表
type ListGroupsQuery struct {
	PageQuery
	IsPublic *bool  `form:"is_public"`
	Search   string `form:"search"`
}

// InviteRequest 邀请成员
type InviteRequest struct {
	InviteeID uint `json:"invitee_id" binding:"required"`
}

// ListInvitationsQuery 我收到的邀请，status 为空时返回全部
type ListInvitationsQuery struct {
	Status string `form:"status"`
}

// GroupStatisticsQuery 群组统计
type GroupStatisticsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=all week"`
}
