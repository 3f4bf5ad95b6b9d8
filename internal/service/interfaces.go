// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
package service

import (
	"context"
	"mime/multipart"

	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
)

// AuthService 注册、登录与当前用户加载
type AuthService interface {
	Register(req request.RegisterRequest) (*respond.AuthRespond, error)
	Login(req request.LoginRequest) (*respond.AuthRespond, error)
	// LoadActiveUser 中间件使用，不存在或已停用返回 401
	LoadActiveUser(userID uint) (*model.User, error)
	Me(user *model.User) *respond.UserRespond
}

// UserService 用户资料与管理员用户管理
type UserService interface {
	GetMe(userID uint) (*respond.UserDetailRespond, error)
	UpdateProfile(userID uint, req request.UpdateProfileRequest) (*respond.UserDetailRespond, error)
	UpdateInstruments(userID uint, req request.UpdateInstrumentsRequest) (*respond.MessageRespond, error)
	UpdateUserTypes(userID uint, req request.UpdateUserTypesRequest) (*respond.MessageRespond, error)
	ChangePassword(userID uint, req request.ChangePasswordRequest) (*respond.MessageRespond, error)
	ChangeEmail(userID uint, req request.ChangeEmailRequest) (*respond.UserRespond, error)
	DeleteMe(userID uint) (*respond.MessageRespond, error)
	Search(userID uint, q request.SearchUsersQuery) (*respond.UserSearchRespond, error)

	ListUsers(q request.AdminUserListQuery) (*respond.UserListRespond, error)
	AdminUpdateUser(adminID, userID uint, req request.AdminUpdateUserRequest) (*respond.UserDetailRespond, error)
	AdminSetStatus(adminID, userID uint, req request.AdminUserStatusRequest) (*respond.UserDetailRespond, error)
}

// ReferenceService 乐器与用户类型
type ReferenceService interface {
	Instruments() ([]model.Instrument, error)
	UserTypes() ([]model.UserType, error)
	// Refresh 清除全部参考数据缓存
	Refresh(ctx context.Context) error
}

// PracticeService 练习记录、统计与录音
type PracticeService interface {
	StartSession(userID uint, req request.CreateSessionRequest) (*respond.SessionRespond, error)
	EndSession(userID, sessionID uint, req request.EndSessionRequest) (*respond.SessionRespond, error)
	ListSessions(userID uint, q request.ListSessionsQuery) (*respond.SessionListRespond, error)
	ActiveSession(userID uint) (*respond.SessionRespond, error)
	GetSession(userID, sessionID uint) (*respond.SessionRespond, error)
	DeleteSession(userID, sessionID uint) error
	Statistics(userID uint) (*respond.PracticeStatisticsRespond, error)
	WeeklyAverage(userID uint, q request.WeeklyAverageQuery) (*respond.WeeklyAverageRespond, error)

	UploadRecording(userID, sessionID uint, file *multipart.FileHeader) (*respond.RecordingRespond, error)
	ListRecordings(userID, sessionID uint) ([]respond.RecordingRespond, error)
	DeleteRecording(userID, recordingID uint) error
}

// AchievementService 成就目录、获得与评估
type AchievementService interface {
	List() (*respond.AchievementListRespond, error)
	My(userID uint) (*respond.UserAchievementListRespond, error)
	Select(userID uint, achievementID *uint) error
	Check(userID uint) *respond.CheckAchievementsRespond
	// Evaluate 评估并授予新成就，出错时返回空结果
	Evaluate(userID uint) []model.Achievement

	Create(req request.CreateAchievementRequest) (*model.Achievement, error)
	Update(id uint, req request.UpdateAchievementRequest) (*model.Achievement, error)
	Delete(id uint) error
}

// GroupService 群组、成员、邀请与统计
type GroupService interface {
	CreateGroup(userID uint, req request.CreateGroupRequest) (*respond.GroupRespond, error)
	ListGroups(userID uint, q request.ListGroupsQuery) (*respond.GroupListRespond, error)
	GetGroup(userID, groupID uint) (*respond.GroupRespond, error)
	UpdateGroup(userID, groupID uint, req request.UpdateGroupRequest) (*respond.GroupRespond, error)
	DeleteGroup(userID, groupID uint) (*respond.MessageRespond, error)
	JoinGroup(userID, groupID uint) (*respond.MessageRespond, error)
	LeaveGroup(userID, groupID uint) (*respond.MessageRespond, error)
	ListMembers(userID, groupID uint) (*respond.GroupMemberListRespond, error)

	Invite(userID, groupID uint, req request.InviteRequest) (*respond.InvitationRespond, error)
	ListInvitations(userID uint, q request.ListInvitationsQuery) (*respond.InvitationListRespond, error)
	AcceptInvitation(userID, invitationID uint) (*respond.MessageRespond, error)
	DeclineInvitation(userID, invitationID uint) (*respond.MessageRespond, error)

	Statistics(userID, groupID uint, q request.GroupStatisticsQuery) (*respond.GroupStatisticsRespond, error)
	MemberStatistics(userID, groupID uint) (*respond.MemberStatisticsListRespond, error)
}

// BoardService 讨论区
type BoardService interface {
	CreatePost(userID uint, req request.CreatePostRequest) (*respond.PostRespond, error)
	ListPosts(userID uint, q request.ListPostsQuery) (*respond.PostListRespond, error)
	GetPost(userID, postID uint) (*respond.PostRespond, error)
	UpdatePost(userID, postID uint, req request.UpdatePostRequest) (*respond.PostRespond, error)
	DeletePost(userID, postID uint) (*respond.MessageRespond, error)

	ListComments(userID, postID uint) (*respond.CommentListRespond, error)
	CreateComment(userID, postID uint, req request.CreateCommentRequest) (*respond.CommentRespond, error)
	UpdateComment(userID, commentID uint, req request.UpdateCommentRequest) (*respond.CommentRespond, error)
	DeleteComment(userID, commentID uint) (*respond.MessageRespond, error)

	TogglePostLike(userID, postID uint) (*respond.LikeRespond, error)
	ToggleCommentLike(userID, commentID uint) (*respond.LikeRespond, error)
	ToggleBookmark(userID, postID uint) (*respond.BookmarkRespond, error)
	ListBookmarks(userID uint, q request.PageQuery) (*respond.PostListRespond, error)
	ReportPost(userID, postID uint, req request.ReportPostRequest) (*respond.MessageRespond, error)

	AdminListPosts(q request.AdminListPostsQuery) (*respond.AdminPostListRespond, error)
	AdminGetPost(postID uint) (*respond.AdminPostRespond, error)
	AdminSetPostStatus(adminID, postID uint, req request.AdminPostStatusRequest) (*respond.AdminPostRespond, error)
	AdminDeletePost(adminID, postID uint) (*respond.MessageRespond, error)
}

// NotificationService 通知查询与推送
type NotificationService interface {
	List(userID uint, q request.PageQuery) (*respond.NotificationListRespond, error)
	MarkRead(userID, notificationID uint) (*respond.NotificationRespond, error)
	MarkAllRead(userID uint) (*respond.ReadAllRespond, error)
	// Push 事务提交后推送给在线用户
	Push(items ...model.Notification)
}

// SupportService 客服工单
type SupportService interface {
	Create(userID uint, req request.CreateSupportRequest) (*respond.SupportRespond, error)
	My(userID uint, q request.PageQuery) (*respond.SupportListRespond, error)
	AdminList(q request.AdminSupportQuery) (*respond.SupportListRespond, error)
	Answer(adminID, supportID uint, req request.AnswerSupportRequest) (*respond.SupportRespond, error)
}
