package respond

import "time"

// GroupRespond 群组
// CurrentUserRole 未加入时为 null
type GroupRespond struct {
	GroupID         uint             `json:"group_id"`
	GroupName       string           `json:"group_name"`
	Description     *string          `json:"description"`
	OwnerID         uint             `json:"owner_id"`
	Owner           UserBriefRespond `json:"owner"`
	IsPublic        bool             `json:"is_public"`
	MaxMembers      int              `json:"max_members"`
	MemberCount     int64            `json:"member_count"`
	CurrentUserRole *string          `json:"current_user_role"`
	IsMember        bool             `json:"is_member"`
	CreatedAt       time.Time        `json:"created_at"`
}

// GroupListRespond 群组列表
type GroupListRespond struct {
	Groups []GroupRespond `json:"groups"`
	PageInfo
}

// GroupMemberRespond 群成员
type GroupMemberRespond struct {
	MemberID uint `json:"member_id"`
	UserBriefRespond
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupMemberListRespond 群成员列表
type GroupMemberListRespond struct {
	Members []GroupMemberRespond `json:"members"`
	Total   int                  `json:"total"`
}

// InvitationGroupRespond 邀请中的群组摘要
type InvitationGroupRespond struct {
	GroupID     uint    `json:"group_id"`
	GroupName   string  `json:"group_name"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

// InvitationRespond 群邀请
type InvitationRespond struct {
	InvitationID uint                   `json:"invitation_id"`
	GroupID      uint                   `json:"group_id"`
	Group        InvitationGroupRespond `json:"group"`
	InviterID    uint                   `json:"inviter_id"`
	Inviter      UserBriefRespond       `json:"inviter"`
	InviteeID    uint                   `json:"invitee_id"`
	Invitee      UserBriefRespond       `json:"invitee"`
	Status       string                 `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	RespondedAt  *time.Time             `json:"responded_at"`
	ExpiresAt    time.Time              `json:"expires_at"`
}

// InvitationListRespond 邀请列表
type InvitationListRespond struct {
	Invitations []InvitationRespond `json:"invitations"`
	Total       int                 `json:"total"`
}

// MostActiveMemberRespond 练习时间最长的成员
type MostActiveMemberRespond struct {
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	TotalTime int64  `json:"total_time"`
}

// GroupStatisticsRespond 群组练习统计
// DailyPracticeTime 为本周周一到周日每天的总秒数
type GroupStatisticsRespond struct {
	GroupID                  uint                     `json:"group_id"`
	Period                   string                   `json:"period"`
	TotalMembers             int                      `json:"total_members"`
	TotalPracticeTime        int64                    `json:"total_practice_time"`
	TotalSessions            int64                    `json:"total_sessions"`
	AveragePracticeTime      int64                    `json:"average_practice_time"`
	AverageSessionsPerMember float64                  `json:"average_sessions_per_member"`
	MostActiveMember         *MostActiveMemberRespond `json:"most_active_member"`
	DailyPracticeTime        []int64                  `json:"daily_practice_time"`
}

// MemberStatisticsRespond 单个成员的练习统计
type MemberStatisticsRespond struct {
	UserID            uint    `json:"user_id"`
	Nickname          string  `json:"nickname"`
	ProfileImageURL   *string `json:"profile_image_url"`
	Role              string  `json:"role"`
	TotalPracticeTime int64   `json:"total_practice_time"`
	TotalSessions     int64   `json:"total_sessions"`
	ConsecutiveDays   int     `json:"consecutive_days"`
	LastPracticeDate  *string `json:"last_practice_date"`
}

// MemberStatisticsListRespond 成员统计，按总时长倒序
type MemberStatisticsListRespond struct {
	GroupID uint                      `json:"group_id"`
	Members []MemberStatisticsRespond `json:"members"`
}
