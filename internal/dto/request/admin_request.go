package request

// AdminUserListQuery 管理员用户列表
type AdminUserListQuery struct {
	PageQuery
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// AdminUpdateUserRequest 管理员修改用户，nil 字段不修改
type AdminUpdateUserRequest struct {
	Nickname       *string `json:"nickname" binding:"omitempty,min=1,max=50"`
	Email          *string `json:"email" binding:"omitempty,email,max=255"`
	IsAdmin        *bool   `json:"is_admin"`
	IsActive       *bool   `json:"is_active"`
	MembershipTier *string `json:"membership_tier" binding:"omitempty,oneof=FREE CUP BOTTLE"`
}

// AdminUserStatusRequest 启用或停用用户
type AdminUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
