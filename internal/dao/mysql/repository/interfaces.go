// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

// ==================== 查询条件 ====================

// UserFilter 管理员用户列表条件
type UserFilter struct {
	Search   string
	IsActive *bool
}

// PracticeFilter 练习记录列表条件，日期为 YYYY-MM-DD
type PracticeFilter struct {
	UserID       uint
	StartDate    string
	EndDate      string
	InstrumentID uint
}

// GroupFilter 群组列表条件
// 返回公开群组或 UserID 所在的群组
type GroupFilter struct {
	UserID   uint
	IsPublic *bool
	Search   string
}

// PostFilter 帖子列表条件
type PostFilter struct {
	Category string
	Tag      string
	Search   string
	// Status 管理员视图: all / visible / hidden / deleted
	// 为空时与 visible 相同，只返回未删除且未隐藏的帖子
	Status string
}

// ==================== 聚合查询结果 ====================

// PracticeTotal 单个用户的练习汇总
type PracticeTotal struct {
	UserID       uint
	TotalSeconds int64
	Sessions     int64
	LastDate     string
}

// DailyTotal 单个用户单日的练习秒数
type DailyTotal struct {
	UserID       uint
	PracticeDate string
	Seconds      int64
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口，默认排除已删除用户
type UserRepository interface {
	FindByID(id uint) (*model.User, error)
	// FindDetail 带资料、乐器、用户类型与称号
	FindDetail(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIDs(ids []uint) ([]model.User, error)
	// EmailTaken / NicknameTaken 只在未删除用户中判断，excludeID 为 0 表示不排除
	EmailTaken(email string, excludeID uint) (bool, error)
	NicknameTaken(nickname string, excludeID uint) (bool, error)
	Create(user *model.User) error
	Save(user *model.User) error
	Updates(id uint, fields map[string]any) error
	// SoftDelete 停用并软删除
	SoftDelete(id uint) error
	// Search 按昵称或唯一码搜索活跃用户
	Search(query string, excludeID uint, limit int) ([]model.User, error)
	List(filter UserFilter, page, pageSize int) ([]model.User, int64, error)
}

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	// FindByUserID 带乐器与用户类型
	FindByUserID(userID uint) (*model.UserProfile, error)
	Create(profile *model.UserProfile) error
	Updates(profileID uint, fields map[string]any) error
	ReplaceInstruments(profileID uint, items []model.UserProfileInstrument) error
	ReplaceUserTypes(profileID uint, items []model.UserProfileUserType) error
	CountInstruments(userID uint) (int64, error)
	// FindByPrimaryInstrument 主乐器相同的其他用户资料，带用户类型
	FindByPrimaryInstrument(instrumentID, excludeUserID uint) ([]model.UserProfile, error)
}

// ReferenceRepository 乐器与用户类型
type ReferenceRepository interface {
	ListInstruments() ([]model.Instrument, error)
	ListUserTypes() ([]model.UserType, error)
	FindInstrumentsByIDs(ids []uint) ([]model.Instrument, error)
	FindUserTypesByIDs(ids []uint) ([]model.UserType, error)
}

// PracticeRepository 练习记录数据访问接口
type PracticeRepository interface {
	Create(session *model.PracticeSession) error
	FindByID(id uint) (*model.PracticeSession, error)
	FindActive(userID uint) (*model.PracticeSession, error)
	Save(session *model.PracticeSession) error
	Delete(id uint) error
	List(filter PracticeFilter, page, pageSize int) ([]model.PracticeSession, int64, error)
	// Totals 已完成练习的汇总，fromDate 为空表示全部
	Totals(userIDs []uint, fromDate string) ([]PracticeTotal, error)
	// CompletedDates 指定日期之后有已完成练习的日期（去重）
	CompletedDates(userID uint, fromDate string) ([]string, error)
	// DailyTotals 闭区间内每人每天的已完成秒数
	DailyTotals(userIDs []uint, startDate, endDate string) ([]DailyTotal, error)
}

// RecordingRepository 练习录音
type RecordingRepository interface {
	Create(rec *model.RecordingFile) error
	FindByID(id uint) (*model.RecordingFile, error)
	ListBySession(sessionID uint) ([]model.RecordingFile, error)
	SoftDelete(id uint) error
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	Create(group *model.Group) error
	FindByID(id uint) (*model.Group, error)
	NameTakenByOwner(ownerID uint, name string, excludeID uint) (bool, error)
	List(filter GroupFilter, page, pageSize int) ([]model.Group, int64, error)
	Updates(id uint, fields map[string]any) error
	// Delete 硬删除群组及其成员、邀请
	Delete(id uint) error
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	Create(member *model.GroupMember) error
	Find(groupID, userID uint) (*model.GroupMember, error)
	Count(groupID uint) (int64, error)
	CountByGroups(groupIDs []uint) (map[uint]int64, error)
	// ListWithUser 按 owner、admin、member、加入时间排序
	ListWithUser(groupID uint) ([]model.GroupMember, error)
	UserIDs(groupID uint) ([]uint, error)
	Delete(groupID, userID uint) error
	ShareGroup(userA, userB uint) (bool, error)
}

// InvitationRepository 群邀请数据访问接口
type InvitationRepository interface {
	Create(inv *model.GroupInvitation) error
	FindByID(id uint) (*model.GroupInvitation, error)
	FindPending(groupID, inviteeID uint, now time.Time) (*model.GroupInvitation, error)
	ListByInvitee(inviteeID uint, status string) ([]model.GroupInvitation, error)
	UpdateStatus(id uint, status string, respondedAt *time.Time) error
}

// PostRepository 帖子数据访问接口
type PostRepository interface {
	Create(post *model.Post) error
	// FindVisible 未删除且未隐藏
	FindVisible(id uint) (*model.Post, error)
	// FindAny 包含已删除与隐藏的帖子
	FindAny(id uint) (*model.Post, error)
	List(filter PostFilter, page, pageSize int) ([]model.Post, int64, error)
	ListBookmarked(userID uint, page, pageSize int) ([]model.Post, int64, error)
	Updates(id uint, fields map[string]any) error
	AdjustCounter(id uint, column string, delta int) (int, error)
	SoftDelete(id uint) error
	// HardDelete 物理删除帖子及评论、点赞、收藏、举报
	HardDelete(id uint) error
}

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	FindAny(id uint) (*model.Comment, error)
	// ListByPost 包含已删除评论，按创建时间升序
	ListByPost(postID uint) ([]model.Comment, error)
	CountByPosts(postIDs []uint) (map[uint]int64, error)
	Updates(id uint, fields map[string]any) error
	AdjustCounter(id uint, column string, delta int) (int, error)
	SoftDelete(id uint) error
}

// EngagementRepository 点赞、收藏与举报
type EngagementRepository interface {
	FindPostLike(postID, userID uint) (*model.PostLike, error)
	CreatePostLike(like *model.PostLike) error
	DeletePostLike(id uint) error
	LikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)

	FindCommentLike(commentID, userID uint) (*model.CommentLike, error)
	CreateCommentLike(like *model.CommentLike) error
	DeleteCommentLike(id uint) error
	LikedCommentIDs(userID uint, commentIDs []uint) (map[uint]bool, error)

	FindBookmark(postID, userID uint) (*model.PostBookmark, error)
	CreateBookmark(b *model.PostBookmark) error
	DeleteBookmark(id uint) error
	BookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)

	ReportExists(postID, reporterID uint) (bool, error)
	CreateReport(report *model.PostReport) error
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(n *model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	List(userID uint, page, pageSize int) ([]model.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) (int64, error)
	Exists(userID uint, notifType string, postID uint) (bool, error)
}

// AchievementRepository 成就数据访问接口
type AchievementRepository interface {
	List() ([]model.Achievement, error)
	FindByID(id uint) (*model.Achievement, error)
	Create(a *model.Achievement) error
	Updates(id uint, fields map[string]any) error
	Delete(id uint) error
	ListByUser(userID uint) ([]model.UserAchievement, error)
	Has(userID, achievementID uint) (bool, error)
	Award(ua *model.UserAchievement) error
}

// SupportRepository 客服工单数据访问接口
type SupportRepository interface {
	Create(s *model.CustomerSupport) error
	FindByID(id uint) (*model.CustomerSupport, error)
	ListByUser(userID uint, page, pageSize int) ([]model.CustomerSupport, int64, error)
	List(status string, page, pageSize int) ([]model.CustomerSupport, int64, error)
	Updates(id uint, fields map[string]any) error
}

// ==================== 聚合结构 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Profile      ProfileRepository
	Reference    ReferenceRepository
	Practice     PracticeRepository
	Recording    RecordingRepository
	Group        GroupRepository
	GroupMember  GroupMemberRepository
	Invitation   InvitationRepository
	Post         PostRepository
	Comment      CommentRepository
	Engagement   EngagementRepository
	Notification NotificationRepository
	Achievement  AchievementRepository
	Support      SupportRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Reference:    NewReferenceRepository(db),
		Practice:     NewPracticeRepository(db),
		Recording:    NewRecordingRepository(db),
		Group:        NewGroupRepository(db),
		GroupMember:  NewGroupMemberRepository(db),
		Invitation:   NewInvitationRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Engagement:   NewEngagementRepository(db),
		Notification: NewNotificationRepository(db),
		Achievement:  NewAchievementRepository(db),
		Support:      NewSupportRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// DB 返回底层连接，供健康检查使用
func (r *Repositories) DB() *gorm.DB {
	return r.db
}
