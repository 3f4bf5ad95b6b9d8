// Package model 定义数据库实体模型
// 本文件定义用户与个人资料模型
package model

import (
	"time"

	"github.com/Min-owo17/Mysic/pkg/util/password"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 会员等级
const (
	MembershipFree   = "FREE"
	MembershipCup    = "CUP"
	MembershipBottle = "BOTTLE"
)

// User 用户模型
// 邮箱与昵称只在未删除用户中唯一，由业务层校验
type User struct {
	ID                    uint           `gorm:"column:user_id;primaryKey"`
	Email                 string         `gorm:"column:email;type:varchar(255);index;not null;comment:邮箱"`
	Nickname              string         `gorm:"column:nickname;type:varchar(50);index;not null;comment:昵称"`
	UniqueCode            string         `gorm:"column:unique_code;type:char(12);uniqueIndex;not null;comment:用户唯一码"`
	PasswordHash          *string        `gorm:"column:password_hash;type:varchar(255);comment:密码哈希，社交账号为空"`
	ProfileImageURL       *string        `gorm:"column:profile_image_url;type:varchar(500);comment:头像"`
	IsActive              bool           `gorm:"column:is_active;not null;default:true;comment:是否启用"`
	IsAdmin               bool           `gorm:"column:is_admin;not null;default:false;comment:是否管理员"`
	MembershipTier        string         `gorm:"column:membership_tier;type:varchar(20);not null;default:FREE;comment:会员等级"`
	SelectedAchievementID *uint          `gorm:"column:selected_achievement_id;comment:展示的称号"`
	LastLoginAt           *time.Time     `gorm:"column:last_login_at;comment:上次登录时间"`
	CreatedAt             time.Time      `gorm:"column:created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Profile             *UserProfile `gorm:"foreignKey:UserID;references:ID"`
	SelectedAchievement *Achievement `gorm:"foreignKey:SelectedAchievementID"`

	// RawPassword 明文密码，在 BeforeSave 中哈希
	RawPassword string `gorm:"-" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave 设置了 RawPassword 时写入哈希
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.RawPassword != "" {
		hash, err := password.Hash(u.RawPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = &hash
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验密码，社交账号始终返回 false
func (u *User) CheckPassword(plaintext string) bool {
	if u.PasswordHash == nil {
		return false
	}
	return password.Verify(plaintext, *u.PasswordHash)
}

// HasPassword 是否为密码账号
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// UserProfile 用户资料，与用户一对一
type UserProfile struct {
	ID        uint                        `gorm:"column:profile_id;primaryKey"`
	UserID    uint                        `gorm:"column:user_id;uniqueIndex;not null"`
	Bio       *string                     `gorm:"column:bio;type:text;comment:简介"`
	Hashtags  datatypes.JSONSlice[string] `gorm:"column:hashtags;comment:标签"`
	CreatedAt time.Time                   `gorm:"column:created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at"`

	Instruments []UserProfileInstrument `gorm:"foreignKey:ProfileID;references:ID"`
	UserTypes   []UserProfileUserType   `gorm:"foreignKey:ProfileID;references:ID"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// PrimaryInstrumentID 返回主乐器，没有时返回 0
func (p *UserProfile) PrimaryInstrumentID() uint {
	for _, pi := range p.Instruments {
		if pi.IsPrimary {
			return pi.InstrumentID
		}
	}
	return 0
}

// UserTypeIDs 返回用户类型 ID 列表
func (p *UserProfile) UserTypeIDs() []uint {
	ids := make([]uint, 0, len(p.UserTypes))
	for _, ut := range p.UserTypes {
		ids = append(ids, ut.UserTypeID)
	}
	return ids
}

// UserProfileInstrument 资料-乐器关联
type UserProfileInstrument struct {
	ID           uint `gorm:"primaryKey"`
	ProfileID    uint `gorm:"column:profile_id;uniqueIndex:uk_profile_instrument;not null"`
	InstrumentID uint `gorm:"column:instrument_id;uniqueIndex:uk_profile_instrument;not null"`
	IsPrimary    bool `gorm:"column:is_primary;not null;default:false"`

	Instrument Instrument `gorm:"foreignKey:InstrumentID"`
}

func (UserProfileInstrument) TableName() string {
	return "user_profile_instruments"
}

// UserProfileUserType 资料-用户类型关联
type UserProfileUserType struct {
	ID         uint `gorm:"primaryKey"`
	ProfileID  uint `gorm:"column:profile_id;uniqueIndex:uk_profile_user_type;not null"`
	UserTypeID uint `gorm:"column:user_type_id;uniqueIndex:uk_profile_user_type;not null"`

	UserType UserType `gorm:"foreignKey:UserTypeID"`
}

func (UserProfileUserType) TableName() string {
	return "user_profile_user_types"
}
