package board

import (
	"fmt"
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

type recordingNotifier struct {
	pushed []model.Notification
}

func (r *recordingNotifier) Push(items ...model.Notification) {
	r.pushed = append(r.pushed, items...)
}

func (r *recordingNotifier) ofType(notifType string) []model.Notification {
	var out []model.Notification
	for _, n := range r.pushed {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

func newTestService(t *testing.T) (*boardService, *repository.Repositories, *recordingNotifier) {
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
	n := &recordingNotifier{}
	return NewBoardService(repos, n), repos, n
}

func createUser(t *testing.T, repos *repository.Repositories, nickname string) *model.User {
	t.Helper()
	u := &model.User{Email: nickname + "@x.com", Nickname: nickname, UniqueCode: "code-" + nickname, IsActive: true}
	require.NoError(t, repos.User.Create(u))
	return u
}

func createPost(t *testing.T, svc *boardService, userID uint, title string) uint {
	t.Helper()
	post, err := svc.CreatePost(userID, request.CreatePostRequest{
		Title:      title,
		Content:    "본문",
		ManualTags: []string{"scale"},
	})
	require.NoError(t, err)
	return post.PostID
}

func TestPostLifecycle(t *testing.T) {
	svc, repos, _ := newTestService(t)
	author := createUser(t, repos, "author")
	reader := createUser(t, repos, "reader")

	postID := createPost(t, svc, author.ID, "첫 글")

	detail, err := svc.GetPost(reader.ID, postID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGeneral, detail.Category)
	assert.Equal(t, []string{"scale"}, detail.Tags)
	assert.Equal(t, 1, detail.ViewCount)
	assert.Nil(t, detail.UpdatedAt)
	assert.Equal(t, "author", detail.Author.Nickname)

	_, err = svc.UpdatePost(reader.ID, postID, request.UpdatePostRequest{Title: ptr("x")})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	updated, err := svc.UpdatePost(author.ID, postID, request.UpdatePostRequest{Title: ptr("수정")})
	require.NoError(t, err)
	assert.Equal(t, "수정", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	list, err := svc.ListPosts(0, request.ListPostsQuery{Tag: "scale"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	_, err = svc.DeletePost(author.ID, postID)
	require.NoError(t, err)
	_, err = svc.GetPost(author.ID, postID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	list, err = svc.ListPosts(author.ID, request.ListPostsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)
}

func TestTogglePostLike(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	author := createUser(t, repos, "author")
	fan := createUser(t, repos, "fan")
	postID := createPost(t, svc, author.ID, "글")

	liked, err := svc.TogglePostLike(fan.ID, postID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, err := svc.TogglePostLike(fan.ID, postID)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, 0, unliked.LikeCount)

	_, err = svc.TogglePostLike(author.ID, postID)
	require.NoError(t, err)
	assert.Len(t, notifier.ofType(model.NotificationLike), 1)
}

func TestExcellentPostNotifiedOnce(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	author := createUser(t, repos, "author")
	postID := createPost(t, svc, author.ID, "인기글")

	fans := make([]*model.User, 0, 11)
	for i := 0; i < 11; i++ {
		fans = append(fans, createUser(t, repos, fmt.Sprintf("fan%d", i)))
	}
	for _, fan := range fans[:10] {
		_, err := svc.TogglePostLike(fan.ID, postID)
		require.NoError(t, err)
	}
	assert.Len(t, notifier.ofType(model.NotificationExcellentPost), 1)

	_, err := svc.TogglePostLike(fans[0].ID, postID)
	require.NoError(t, err)
	_, err = svc.TogglePostLike(fans[10].ID, postID)
	require.NoError(t, err)
	assert.Len(t, notifier.ofType(model.NotificationExcellentPost), 1)
}

func TestReportHidesPostOnce(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	author := createUser(t, repos, "author")
	postID := createPost(t, svc, author.ID, "문제글")

	_, err := svc.ReportPost(author.ID, postID, request.ReportPostRequest{Reason: "spam"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	reporters := make([]*model.User, 0, 6)
	for i := 0; i < 6; i++ {
		reporters = append(reporters, createUser(t, repos, fmt.Sprintf("reporter%d", i)))
	}
	for _, r := range reporters[:4] {
		_, err := svc.ReportPost(r.ID, postID, request.ReportPostRequest{Reason: "spam"})
		require.NoError(t, err)
	}
	_, err = svc.ReportPost(reporters[0].ID, postID, request.ReportPostRequest{Reason: "spam"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
	assert.Empty(t, notifier.ofType(model.NotificationReportHidden))

	_, err = svc.ReportPost(reporters[4].ID, postID, request.ReportPostRequest{Reason: "spam"})
	require.NoError(t, err)
	hidden := notifier.ofType(model.NotificationReportHidden)
	require.Len(t, hidden, 1)
	assert.Equal(t, author.ID, hidden[0].UserID)

	_, err = svc.GetPost(author.ID, postID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	_, err = svc.ReportPost(reporters[5].ID, postID, request.ReportPostRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.Len(t, notifier.ofType(model.NotificationReportHidden), 1)

	post, err := svc.AdminGetPost(postID)
	require.NoError(t, err)
	assert.Equal(t, 6, post.ReportCount)
	assert.True(t, post.IsHidden)
}

func TestCommentTree(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	author := createUser(t, repos, "author")
	bob := createUser(t, repos, "bob")
	carol := createUser(t, repos, "carol")
	postID := createPost(t, svc, author.ID, "글")
	otherPostID := createPost(t, svc, author.ID, "다른 글")

	parent, err := svc.CreateComment(bob.ID, postID, request.CreateCommentRequest{Content: "좋아요"})
	require.NoError(t, err)
	reply, err := svc.CreateComment(carol.ID, postID, request.CreateCommentRequest{Content: "동의", ParentCommentID: &parent.CommentID})
	require.NoError(t, err)
	assert.Equal(t, parent.CommentID, *reply.ParentCommentID)

	assert.Len(t, notifier.ofType(model.NotificationComment), 2)
	replies := notifier.ofType(model.NotificationReply)
	require.Len(t, replies, 1)
	assert.Equal(t, bob.ID, replies[0].UserID)

	_, err = svc.CreateComment(carol.ID, otherPostID, request.CreateCommentRequest{Content: "x", ParentCommentID: &parent.CommentID})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
	_, err = svc.CreateComment(carol.ID, postID, request.CreateCommentRequest{Content: "x", ParentCommentID: ptr[uint](9999)})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	_, err = svc.DeleteComment(carol.ID, parent.CommentID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.DeleteComment(bob.ID, parent.CommentID)
	require.NoError(t, err)

	_, err = svc.CreateComment(carol.ID, postID, request.CreateCommentRequest{Content: "x", ParentCommentID: &parent.CommentID})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	tree, err := svc.ListComments(carol.ID, postID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, tree.Total)
	require.Len(t, tree.Comments, 1)
	assert.Empty(t, tree.Comments[0].Content)
	assert.NotNil(t, tree.Comments[0].DeletedAt)
	require.Len(t, tree.Comments[0].Replies, 1)
	assert.Equal(t, "동의", tree.Comments[0].Replies[0].Content)

	post, err := svc.GetPost(author.ID, postID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, post.CommentCount)
}

func TestCommentLikeAndUpdate(t *testing.T) {
	svc, repos, _ := newTestService(t)
	author := createUser(t, repos, "author")
	bob := createUser(t, repos, "bob")
	postID := createPost(t, svc, author.ID, "글")
	c, err := svc.CreateComment(author.ID, postID, request.CreateCommentRequest{Content: "원문"})
	require.NoError(t, err)

	liked, err := svc.ToggleCommentLike(bob.ID, c.CommentID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 1, liked.LikeCount)

	_, err = svc.UpdateComment(bob.ID, c.CommentID, request.UpdateCommentRequest{Content: "x"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	updated, err := svc.UpdateComment(author.ID, c.CommentID, request.UpdateCommentRequest{Content: "수정"})
	require.NoError(t, err)
	assert.Equal(t, "수정", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)

	tree, err := svc.ListComments(bob.ID, postID)
	require.NoError(t, err)
	require.Len(t, tree.Comments, 1)
	assert.True(t, tree.Comments[0].IsLiked)
}

func TestBookmarks(t *testing.T) {
	svc, repos, _ := newTestService(t)
	author := createUser(t, repos, "author")
	bob := createUser(t, repos, "bob")
	first := createPost(t, svc, author.ID, "하나")
	second := createPost(t, svc, author.ID, "둘")

	for _, id := range []uint{first, second} {
		rsp, err := svc.ToggleBookmark(bob.ID, id)
		require.NoError(t, err)
		assert.True(t, rsp.IsBookmarked)
	}
	rsp, err := svc.ToggleBookmark(bob.ID, first)
	require.NoError(t, err)
	assert.False(t, rsp.IsBookmarked)

	list, err := svc.ListBookmarks(bob.ID, request.PageQuery{})
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, second, list.Posts[0].PostID)
	assert.True(t, list.Posts[0].IsBookmarked)
}

func TestReportAfterUnhideNotifiesOnce(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	admin := createUser(t, repos, "admin")
	author := createUser(t, repos, "author")
	postID := createPost(t, svc, author.ID, "재검토")

	for i := 0; i < 5; i++ {
		r := createUser(t, repos, fmt.Sprintf("reporter%d", i))
		_, err := svc.ReportPost(r.ID, postID, request.ReportPostRequest{Reason: "spam"})
		require.NoError(t, err)
	}
	require.Len(t, notifier.ofType(model.NotificationReportHidden), 1)

	rsp, err := svc.AdminSetPostStatus(admin.ID, postID, request.AdminPostStatusRequest{IsHidden: ptr(false)})
	require.NoError(t, err)
	assert.False(t, rsp.IsHidden)

	late := createUser(t, repos, "late")
	_, err = svc.ReportPost(late.ID, postID, request.ReportPostRequest{Reason: "spam"})
	require.NoError(t, err)

	post, err := svc.AdminGetPost(postID)
	require.NoError(t, err)
	assert.True(t, post.IsHidden)
	assert.Equal(t, 6, post.ReportCount)
	assert.Len(t, notifier.ofType(model.NotificationReportHidden), 1)
}

func TestAdminModeration(t *testing.T) {
	svc, repos, _ := newTestService(t)
	admin := createUser(t, repos, "admin")
	author := createUser(t, repos, "author")
	keep := createPost(t, svc, author.ID, "남길 글")
	drop := createPost(t, svc, author.ID, "지울 글")
	_, err := svc.CreateComment(admin.ID, drop, request.CreateCommentRequest{Content: "c"})
	require.NoError(t, err)

	rsp, err := svc.AdminSetPostStatus(admin.ID, keep, request.AdminPostStatusRequest{IsHidden: ptr(true)})
	require.NoError(t, err)
	assert.True(t, rsp.IsHidden)

	hidden, err := svc.AdminListPosts(request.AdminListPostsQuery{Status: "hidden"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, hidden.Total)
	all, err := svc.AdminListPosts(request.AdminListPostsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	_, err = svc.AdminDeletePost(admin.ID, drop)
	require.NoError(t, err)
	_, err = svc.AdminGetPost(drop)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	comments, err := repos.Comment.ListByPost(drop)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = svc.AdminSetPostStatus(admin.ID, keep, request.AdminPostStatusRequest{IsHidden: ptr(false)})
	require.NoError(t, err)
	_, err = svc.GetPost(author.ID, keep)
	require.NoError(t, err)
}

func TestUpdatedAtUsesClock(t *testing.T) {
	svc, repos, _ := newTestService(t)
	author := createUser(t, repos, "author")
	postID := createPost(t, svc, author.ID, "글")
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	updated, err := svc.UpdatePost(author.ID, postID, request.UpdatePostRequest{Content: ptr("새 본문")})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, fixed.Equal(*updated.UpdatedAt))
}

func ptr[T any](v T) *T { return &v }
