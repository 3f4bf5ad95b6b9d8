package group

import (
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*groupInfoService, *repository.Repositories) {
	t.Helper()
	db, err := mysql.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repos := repository.NewRepositories(db)
	svc := NewGroupService(repos)
	// 2024-03-13 是周三
	svc.now = func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local) }
	return svc, repos
}

func createUser(t *testing.T, repos *repository.Repositories, nickname string) *model.User {
	t.Helper()
	u := &model.User{Email: nickname + "@x.com", Nickname: nickname, UniqueCode: "code-" + nickname, IsActive: true}
	require.NoError(t, repos.User.Create(u))
	return u
}

func completed(t *testing.T, repos *repository.Repositories, userID uint, date string, seconds int) {
	t.Helper()
	require.NoError(t, repos.Practice.Create(&model.PracticeSession{
		UserID:         userID,
		PracticeDate:   date,
		StartTime:      time.Now(),
		ActualPlayTime: seconds,
		Status:         model.PracticeCompleted,
	}))
}

func ptr[T any](v T) *T { return &v }

func TestCreateGroup(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")

	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "아침 연습"})
	require.NoError(t, err)
	assert.False(t, group.IsPublic)
	assert.Equal(t, 50, group.MaxMembers)
	assert.EqualValues(t, 1, group.MemberCount)
	require.NotNil(t, group.CurrentUserRole)
	assert.Equal(t, model.GroupRoleOwner, *group.CurrentUserRole)
	assert.Equal(t, "owner", group.Owner.Nickname)

	_, err = svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "아침 연습"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
}

func TestPrivateGroupAccessAndJoin(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")
	bob := createUser(t, repos, "bob")

	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "비공개"})
	require.NoError(t, err)

	_, err = svc.GetGroup(bob.ID, group.GroupID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	inv, err := svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, model.InvitationPending, inv.Status)

	_, err = svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: bob.ID})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	require.NoError(t, err)

	invs, err := svc.ListInvitations(bob.ID, request.ListInvitationsQuery{Status: model.InvitationAccepted})
	require.NoError(t, err)
	assert.Equal(t, 1, invs.Total)

	detail, err := svc.GetGroup(bob.ID, group.GroupID)
	require.NoError(t, err)
	assert.True(t, detail.IsMember)
	assert.EqualValues(t, 2, detail.MemberCount)

	members, err := svc.ListMembers(bob.ID, group.GroupID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)
	assert.Equal(t, model.GroupRoleOwner, members.Members[0].Role)

	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
}

func TestInvitationRules(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")
	bob := createUser(t, repos, "bob")
	carol := createUser(t, repos, "carol")

	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "g", IsPublic: true, MaxMembers: ptr(2)})
	require.NoError(t, err)

	_, err = svc.Invite(bob.ID, group.GroupID, request.InviteRequest{InviteeID: carol.ID})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: owner.ID})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
	_, err = svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: 9999})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	inv, err := svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: carol.ID})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(bob.ID, inv.InvitationID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(carol.ID, inv.InvitationID)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	_, err = svc.DeclineInvitation(carol.ID, inv.InvitationID)
	require.NoError(t, err)
	_, err = svc.DeclineInvitation(carol.ID, inv.InvitationID)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	_, err = svc.ListInvitations(carol.ID, request.ListInvitationsQuery{Status: "bogus"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
}

func TestExpiredInvitation(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")
	bob := createUser(t, repos, "bob")

	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "g"})
	require.NoError(t, err)
	inv, err := svc.Invite(owner.ID, group.GroupID, request.InviteRequest{InviteeID: bob.ID})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2024, 3, 21, 10, 0, 0, 0, time.Local) }
	_, err = svc.AcceptInvitation(bob.ID, inv.InvitationID)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	invs, err := svc.ListInvitations(bob.ID, request.ListInvitationsQuery{Status: model.InvitationExpired})
	require.NoError(t, err)
	assert.Equal(t, 1, invs.Total)
}

func TestLeaveUpdateDelete(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")
	bob := createUser(t, repos, "bob")

	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "g", IsPublic: true})
	require.NoError(t, err)
	_, err = svc.LeaveGroup(bob.ID, group.GroupID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	require.NoError(t, err)
	_, err = svc.LeaveGroup(owner.ID, group.GroupID)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	_, err = svc.UpdateGroup(bob.ID, group.GroupID, request.UpdateGroupRequest{GroupName: ptr("x")})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.UpdateGroup(owner.ID, group.GroupID, request.UpdateGroupRequest{MaxMembers: ptr(1)})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
	updated, err := svc.UpdateGroup(owner.ID, group.GroupID, request.UpdateGroupRequest{GroupName: ptr("새 이름"), IsPublic: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "새 이름", updated.GroupName)
	assert.False(t, updated.IsPublic)

	_, err = svc.LeaveGroup(bob.ID, group.GroupID)
	require.NoError(t, err)

	_, err = svc.DeleteGroup(bob.ID, group.GroupID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.DeleteGroup(owner.ID, group.GroupID)
	require.NoError(t, err)
	_, err = svc.GetGroup(owner.ID, group.GroupID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestGroupStatistics(t *testing.T) {
	svc, repos := newTestService(t)
	owner := createUser(t, repos, "owner")
	bob := createUser(t, repos, "bob")
	group, err := svc.CreateGroup(owner.ID, request.CreateGroupRequest{GroupName: "g", IsPublic: true})
	require.NoError(t, err)
	_, err = svc.JoinGroup(bob.ID, group.GroupID)
	require.NoError(t, err)

	completed(t, repos, owner.ID, "2024-03-01", 1000)
	completed(t, repos, owner.ID, "2024-03-11", 600)
	completed(t, repos, bob.ID, "2024-03-12", 1200)
	completed(t, repos, bob.ID, "2024-03-13", 1200)

	all, err := svc.Statistics(owner.ID, group.GroupID, request.GroupStatisticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "all", all.Period)
	assert.Equal(t, 2, all.TotalMembers)
	assert.EqualValues(t, 4000, all.TotalPracticeTime)
	assert.EqualValues(t, 4, all.TotalSessions)
	assert.EqualValues(t, 2000, all.AveragePracticeTime)
	require.NotNil(t, all.MostActiveMember)
	assert.Equal(t, bob.ID, all.MostActiveMember.UserID)
	assert.Equal(t, []int64{600, 1200, 1200, 0, 0, 0, 0}, all.DailyPracticeTime)

	week, err := svc.Statistics(owner.ID, group.GroupID, request.GroupStatisticsQuery{Period: "week"})
	require.NoError(t, err)
	assert.EqualValues(t, 3000, week.TotalPracticeTime)
	assert.EqualValues(t, 3, week.TotalSessions)

	members, err := svc.MemberStatistics(owner.ID, group.GroupID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)
	assert.Equal(t, bob.ID, members.Members[0].UserID)
	assert.Equal(t, 2, members.Members[0].ConsecutiveDays)
	assert.Equal(t, 0, members.Members[1].ConsecutiveDays)
}
