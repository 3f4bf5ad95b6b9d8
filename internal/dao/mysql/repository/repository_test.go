package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := mysql.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepositories(db)
}

func createUser(t *testing.T, repos *Repositories, nickname string) *model.User {
	t.Helper()
	u := &model.User{
		Email:      nickname + "@x.com",
		Nickname:   nickname,
		UniqueCode: fmt.Sprintf("%012s", nickname),
		IsActive:   true,
	}
	require.NoError(t, repos.User.Create(u))
	return u
}

func TestUserTakenIgnoresDeletedUsers(t *testing.T) {
	repos := newTestRepos(t)
	u := createUser(t, repos, "alice")

	taken, err := repos.User.EmailTaken("alice@x.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.User.EmailTaken("alice@x.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repos.User.SoftDelete(u.ID))

	taken, err = repos.User.EmailTaken("alice@x.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = repos.User.NicknameTaken("alice", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = repos.User.FindByID(u.ID)
	assert.True(t, errorx.IsNotFound(err))
}

func TestUserSearchExcludesSelfAndInactive(t *testing.T) {
	repos := newTestRepos(t)
	me := createUser(t, repos, "piano1")
	other := createUser(t, repos, "piano2")
	inactive := createUser(t, repos, "piano3")
	require.NoError(t, repos.User.Updates(inactive.ID, map[string]any{"is_active": false}))

	users, err := repos.User.Search("piano", me.ID, 20)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, other.ID, users[0].ID)
}

func TestAdjustCounterClampsAtZero(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "author")
	post := &model.Post{UserID: author.ID, Title: "t", Content: "c", Category: model.CategoryGeneral}
	require.NoError(t, repos.Post.Create(post))

	n, err := repos.Post.AdjustCounter(post.ID, "like_count", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repos.Post.AdjustCounter(post.ID, "like_count", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = repos.Post.AdjustCounter(post.ID, "like_count", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPostListSkipsHiddenAndDeleted(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "author")
	titles := []string{"visible", "hidden", "deleted"}
	ids := make(map[string]uint)
	for _, title := range titles {
		p := &model.Post{UserID: author.ID, Title: title, Content: "c", Category: model.CategoryGeneral}
		require.NoError(t, repos.Post.Create(p))
		ids[title] = p.ID
	}
	require.NoError(t, repos.Post.Updates(ids["hidden"], map[string]any{"is_hidden": true}))
	require.NoError(t, repos.Post.SoftDelete(ids["deleted"]))

	posts, total, err := repos.Post.List(PostFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].Title)

	_, err = repos.Post.FindVisible(ids["hidden"])
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.Post.FindVisible(ids["deleted"])
	assert.True(t, errorx.IsNotFound(err))

	found, err := repos.Post.FindAny(ids["deleted"])
	require.NoError(t, err)
	assert.True(t, found.DeletedAt.Valid)

	for status, want := range map[string]int64{
		PostStatusAll:     3,
		PostStatusVisible: 1,
		PostStatusHidden:  1,
		PostStatusDeleted: 1,
	} {
		_, total, err := repos.Post.List(PostFilter{Status: status}, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, want, total, status)
	}
}

func TestCommentListKeepsDeletedParents(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "author")
	post := &model.Post{UserID: author.ID, Title: "t", Content: "c", Category: model.CategoryGeneral}
	require.NoError(t, repos.Post.Create(post))

	parent := &model.Comment{PostID: post.ID, UserID: author.ID, Content: "parent"}
	require.NoError(t, repos.Comment.Create(parent))
	reply := &model.Comment{PostID: post.ID, UserID: author.ID, Content: "reply", ParentCommentID: &parent.ID}
	require.NoError(t, repos.Comment.Create(reply))
	require.NoError(t, repos.Comment.SoftDelete(parent.ID))

	comments, err := repos.Comment.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	counts, err := repos.Comment.CountByPosts([]uint{post.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[post.ID])
}

func TestPracticeAggregates(t *testing.T) {
	repos := newTestRepos(t)
	u := createUser(t, repos, "player")
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := []struct {
		date    string
		seconds int
		status  string
	}{
		{"2024-05-01", 600, model.PracticeCompleted},
		{"2024-05-01", 300, model.PracticeCompleted},
		{"2024-05-02", 900, model.PracticeCompleted},
		{"2024-05-03", 1000, model.PracticeInProgress},
	}
	for _, row := range rows {
		require.NoError(t, repos.Practice.Create(&model.PracticeSession{
			UserID: u.ID, PracticeDate: row.date, StartTime: start,
			ActualPlayTime: row.seconds, Status: row.status,
		}))
	}

	totals, err := repos.Practice.Totals([]uint{u.ID}, "")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.EqualValues(t, 1800, totals[0].TotalSeconds)
	assert.EqualValues(t, 3, totals[0].Sessions)
	assert.Equal(t, "2024-05-02", totals[0].LastDate)

	dates, err := repos.Practice.CompletedDates(u.ID, "2024-01-01")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2024-05-01", "2024-05-02"}, dates)

	daily, err := repos.Practice.DailyTotals([]uint{u.ID}, "2024-05-01", "2024-05-07")
	require.NoError(t, err)
	assert.Len(t, daily, 2)

	active, err := repos.Practice.FindActive(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", active.PracticeDate)
}

func TestGroupMembershipQueries(t *testing.T) {
	repos := newTestRepos(t)
	owner := createUser(t, repos, "owner")
	member := createUser(t, repos, "member")
	stranger := createUser(t, repos, "stranger")

	g := &model.Group{GroupName: "string quartet", OwnerID: owner.ID, IsPublic: false, MaxMembers: 4}
	require.NoError(t, repos.Group.Create(g))
	now := time.Now()
	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{GroupID: g.ID, UserID: member.ID, Role: model.GroupRoleMember, JoinedAt: now}))
	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{GroupID: g.ID, UserID: owner.ID, Role: model.GroupRoleOwner, JoinedAt: now.Add(time.Second)}))

	members, err := repos.GroupMember.ListWithUser(g.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, model.GroupRoleOwner, members[0].Role)

	shared, err := repos.GroupMember.ShareGroup(owner.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, shared)
	shared, err = repos.GroupMember.ShareGroup(owner.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, shared)

	// 私有群组对非成员不可见
	groups, total, err := repos.Group.List(GroupFilter{UserID: stranger.ID}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, groups)

	groups, _, err = repos.Group.List(GroupFilter{UserID: member.ID}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	require.NoError(t, repos.Group.Delete(g.ID))
	count, err := repos.GroupMember.Count(g.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransactionRollsBack(t *testing.T) {
	repos := newTestRepos(t)
	err := repos.Transaction(func(tx *Repositories) error {
		createUser(t, tx, "ghost")
		return errorx.New(errorx.CodeBadRequest, "abort")
	})
	require.Error(t, err)

	taken, err := repos.User.NicknameTaken("ghost", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}
