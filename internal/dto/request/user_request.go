package request

// UpdateProfileRequest 修改个人资料，nil 字段不修改
type UpdateProfileRequest struct {
	Nickname        *string  `json:"nickname" binding:"omitempty,min=1,max=50"`
	ProfileImageURL *string  `json:"profile_image_url" binding:"omitempty,max=100000"`
	Bio             *string  `json:"bio" binding:"omitempty,max=2000"`
	Hashtags        []string `json:"hashtags" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateInstrumentsRequest 替换乐器列表
// PrimaryInstrumentID 必须包含在 InstrumentIDs 中
type UpdateInstrumentsRequest struct {
	InstrumentIDs       []uint `json:"instrument_ids" binding:"required"`
	PrimaryInstrumentID *uint  `json:"primary_instrument_id"`
}

// UpdateUserTypesRequest 替换用户类型列表
type UpdateUserTypesRequest struct {
	UserTypeIDs []uint `json:"user_type_ids" binding:"required"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// ChangeEmailRequest 修改邮箱
type ChangeEmailRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewEmail        string `json:"new_email" binding:"required,email,max=255"`
}

// SearchUsersQuery 按昵称或唯一码搜索
type SearchUsersQuery struct {
	Query string `form:"query" binding:"required,min=1,max=50"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}
