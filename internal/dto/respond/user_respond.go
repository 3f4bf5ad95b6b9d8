package respond

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/model"
)

// UserRespond 登录注册返回的用户信息
type UserRespond struct {
	UserID          uint       `json:"user_id"`
	Email           string     `json:"email"`
	Nickname        string     `json:"nickname"`
	UniqueCode      string     `json:"unique_code"`
	ProfileImageURL *string    `json:"profile_image_url"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AuthRespond 注册、登录响应
type AuthRespond struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserRespond `json:"user"`
}

// UserBriefRespond 作者、群主、成员、搜索结果等处展示的用户摘要
type UserBriefRespond struct {
	UserID              uint               `json:"user_id"`
	Nickname            string             `json:"nickname"`
	UniqueCode          string             `json:"unique_code"`
	ProfileImageURL     *string            `json:"profile_image_url"`
	SelectedAchievement *model.Achievement `json:"selected_achievement"`
}

// ProfileInstrumentRespond 资料中的乐器
type ProfileInstrumentRespond struct {
	InstrumentID   uint   `json:"instrument_id"`
	InstrumentName string `json:"instrument_name"`
	IsPrimary      bool   `json:"is_primary"`
}

// ProfileUserTypeRespond 资料中的用户类型
type ProfileUserTypeRespond struct {
	UserTypeID   uint   `json:"user_type_id"`
	UserTypeName string `json:"user_type_name"`
}

// ProfileRespond 个人资料
type ProfileRespond struct {
	ProfileID   uint                       `json:"profile_id"`
	UserID      uint                       `json:"user_id"`
	Bio         *string                    `json:"bio"`
	Hashtags    []string                   `json:"hashtags"`
	Instruments []ProfileInstrumentRespond `json:"instruments"`
	UserTypes   []ProfileUserTypeRespond   `json:"user_types"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// UserDetailRespond 当前用户或管理员视图的完整信息
type UserDetailRespond struct {
	UserID                uint               `json:"user_id"`
	Email                 string             `json:"email"`
	Nickname              string             `json:"nickname"`
	UniqueCode            string             `json:"unique_code"`
	ProfileImageURL       *string            `json:"profile_image_url"`
	IsActive              bool               `json:"is_active"`
	IsAdmin               bool               `json:"is_admin"`
	MembershipTier        string             `json:"membership_tier"`
	LastLoginAt           *time.Time         `json:"last_login_at"`
	SelectedAchievementID *uint              `json:"selected_achievement_id"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	Profile               *ProfileRespond    `json:"profile"`
	SelectedAchievement   *model.Achievement `json:"selected_achievement"`
}

// UserListRespond 管理员用户列表
type UserListRespond struct {
	Users []UserDetailRespond `json:"users"`
	PageInfo
}

// NewUserRespond 转换登录用户信息
func NewUserRespond(u *model.User) UserRespond {
	return UserRespond{
		UserID:          u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		UniqueCode:      u.UniqueCode,
		ProfileImageURL: u.ProfileImageURL,
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

// NewUserBrief 转换用户摘要，需预加载 SelectedAchievement
func NewUserBrief(u *model.User) UserBriefRespond {
	return UserBriefRespond{
		UserID:              u.ID,
		Nickname:            u.Nickname,
		UniqueCode:          u.UniqueCode,
		ProfileImageURL:     u.ProfileImageURL,
		SelectedAchievement: u.SelectedAchievement,
	}
}

// NewUserDetail 转换完整用户信息，Profile 为空时不返回资料
func NewUserDetail(u *model.User) UserDetailRespond {
	rsp := UserDetailRespond{
		UserID:                u.ID,
		Email:                 u.Email,
		Nickname:              u.Nickname,
		UniqueCode:            u.UniqueCode,
		ProfileImageURL:       u.ProfileImageURL,
		IsActive:              u.IsActive,
		IsAdmin:               u.IsAdmin,
		MembershipTier:        u.MembershipTier,
		LastLoginAt:           u.LastLoginAt,
		SelectedAchievementID: u.SelectedAchievementID,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		SelectedAchievement:   u.SelectedAchievement,
	}
	if u.Profile != nil {
		p := NewProfile(u.Profile)
		rsp.Profile = &p
	}
	return rsp
}

// NewProfile 转换个人资料
func NewProfile(p *model.UserProfile) ProfileRespond {
	rsp := ProfileRespond{
		ProfileID:   p.ID,
		UserID:      p.UserID,
		Bio:         p.Bio,
		Hashtags:    []string(p.Hashtags),
		Instruments: make([]ProfileInstrumentRespond, 0, len(p.Instruments)),
		UserTypes:   make([]ProfileUserTypeRespond, 0, len(p.UserTypes)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if rsp.Hashtags == nil {
		rsp.Hashtags = []string{}
	}
	for _, pi := range p.Instruments {
		rsp.Instruments = append(rsp.Instruments, ProfileInstrumentRespond{
			InstrumentID:   pi.InstrumentID,
			InstrumentName: pi.Instrument.Name,
			IsPrimary:      pi.IsPrimary,
		})
	}
	for _, ut := range p.UserTypes {
		rsp.UserTypes = append(rsp.UserTypes, ProfileUserTypeRespond{
			UserTypeID:   ut.UserTypeID,
			UserTypeName: ut.UserType.Name,
		})
	}
	return rsp
}

// UserSearchRespond 用户搜索结果
type UserSearchRespond struct {
	Users []UserBriefRespond `json:"users"`
	Total int                `json:"total"`
}
