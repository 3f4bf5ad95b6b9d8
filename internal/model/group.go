package model

import "time"

// 群成员角色
const (
	GroupRoleOwner  = "owner"
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"
)

// 邀请状态
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
	InvitationExpired  = "expired"
)

// Group 练习群组，删除为硬删除并级联成员与邀请
type Group struct {
	ID          uint      `gorm:"column:group_id;primaryKey"`
	GroupName   string    `gorm:"column:group_name;type:varchar(100);index;not null"`
	Description *string   `gorm:"column:description;type:text"`
	OwnerID     uint      `gorm:"column:owner_id;index;not null"`
	IsPublic    bool      `gorm:"column:is_public;not null;default:false"`
	MaxMembers  int       `gorm:"column:max_members;not null;default:50"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Group) TableName() string {
	return "practice_groups"
}

// GroupMember 群成员，(group_id, user_id) 唯一
type GroupMember struct {
	ID       uint      `gorm:"column:member_id;primaryKey"`
	GroupID  uint      `gorm:"column:group_id;uniqueIndex:uk_group_user;not null"`
	UserID   uint      `gorm:"column:user_id;uniqueIndex:uk_group_user;index;not null"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:member"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"`

	User User `gorm:"foreignKey:UserID"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// GroupInvitation 群邀请，非 pending 状态不可再变更
type GroupInvitation struct {
	ID          uint       `gorm:"column:invitation_id;primaryKey"`
	GroupID     uint       `gorm:"column:group_id;index;not null"`
	InviterID   uint       `gorm:"column:inviter_id;not null"`
	InviteeID   uint       `gorm:"column:invitee_id;index;not null"`
	Status      string     `gorm:"column:status;type:varchar(20);index;not null;default:pending"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;not null"`

	Group   Group `gorm:"foreignKey:GroupID"`
	Inviter User  `gorm:"foreignKey:InviterID"`
	Invitee User  `gorm:"foreignKey:InviteeID"`
}

func (GroupInvitation) TableName() string {
	return "group_invitations"
}

// Expired 邀请是否已过期
func (i *GroupInvitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
