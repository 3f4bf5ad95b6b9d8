// Package board 实现讨论区：帖子、评论、点赞、收藏、举报与管理
// 触发通知的操作在同一事务内写通知，提交后再推送
package board

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// notifier 事务提交后推送通知，由 notification 包实现
type notifier interface {
	Push(items ...model.Notification)
}

type nopNotifier struct{}

func (nopNotifier) Push(...model.Notification) {}

type boardService struct {
	repos    *repository.Repositories
	notifier notifier
	now      func() time.Time
}

// NewBoardService n 为 nil 时不推送
func NewBoardService(repos *repository.Repositories, n notifier) *boardService {
	if n == nil {
		n = nopNotifier{}
	}
	return &boardService{
		repos:    repos,
		notifier: n,
		now:      time.Now,
	}
}

var (
	errPostNotFound    = errorx.New(errorx.CodeNotFound, "帖子不存在")
	errCommentNotFound = errorx.New(errorx.CodeNotFound, "评论不存在")
)

// visiblePost 查询未删除且未隐藏的帖子
func (b *boardService) visiblePost(postID uint) (*model.Post, error) {
	post, err := b.repos.Post.FindVisible(postID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errPostNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return post, nil
}

func postRespond(p *model.Post, comments int64, liked, bookmarked bool) respond.PostRespond {
	tags := []string(p.ManualTags)
	if tags == nil {
		tags = []string{}
	}
	return respond.PostRespond{
		PostID:       p.ID,
		UserID:       p.UserID,
		Author:       respond.NewUserBrief(&p.User),
		Title:        p.Title,
		Content:      p.Content,
		Category:     p.Category,
		Tags:         tags,
		ViewCount:    p.ViewCount,
		LikeCount:    p.LikeCount,
		CommentCount: comments,
		IsLiked:      liked,
		IsBookmarked: bookmarked,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// postRespondList 批量补充评论数与当前用户的点赞、收藏状态，userID 为 0 表示未登录
func (b *boardService) postRespondList(userID uint, posts []model.Post) ([]respond.PostRespond, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := b.repos.Comment.CountByPosts(ids)
	if err != nil {
		return nil, err
	}
	liked := map[uint]bool{}
	bookmarked := map[uint]bool{}
	if userID != 0 && len(ids) > 0 {
		if liked, err = b.repos.Engagement.LikedPostIDs(userID, ids); err != nil {
			return nil, err
		}
		if bookmarked, err = b.repos.Engagement.BookmarkedPostIDs(userID, ids); err != nil {
			return nil, err
		}
	}
	items := make([]respond.PostRespond, 0, len(posts))
	for i := range posts {
		id := posts[i].ID
		items = append(items, postRespond(&posts[i], counts[id], liked[id], bookmarked[id]))
	}
	return items, nil
}

func (b *boardService) singlePost(userID uint, post *model.Post) (*respond.PostRespond, error) {
	items, err := b.postRespondList(userID, []model.Post{*post})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &items[0], nil
}

// CreatePost 发帖，分类默认 general
func (b *boardService) CreatePost(userID uint, req request.CreatePostRequest) (*respond.PostRespond, error) {
	category := req.Category
	if category == "" {
		category = model.CategoryGeneral
	}
	post := &model.Post{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		Category:   category,
		ManualTags: req.ManualTags,
	}
	if post.ManualTags == nil {
		post.ManualTags = []string{}
	}
	if err := b.repos.Post.Create(post); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", userID))

	saved, err := b.visiblePost(post.ID)
	if err != nil {
		return nil, err
	}
	return b.singlePost(userID, saved)
}

// ListPosts 可见帖子列表，按创建时间倒序
func (b *boardService) ListPosts(userID uint, q request.ListPostsQuery) (*respond.PostListRespond, error) {
	page, pageSize := q.Normalize()
	posts, total, err := b.repos.Post.List(repository.PostFilter{
		Category: q.Category,
		Tag:      q.Tag,
		Search:   q.Search,
	}, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	items, err := b.postRespondList(userID, posts)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.PostListRespond{
		Posts:    items,
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}, nil
}

// GetPost 帖子详情，浏览数加一
func (b *boardService) GetPost(userID, postID uint) (*respond.PostRespond, error) {
	post, err := b.visiblePost(postID)
	if err != nil {
		return nil, err
	}
	views, err := b.repos.Post.AdjustCounter(postID, "view_count", 1)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	post.ViewCount = views
	return b.singlePost(userID, post)
}

// ownPost 只有作者可以修改或删除
func (b *boardService) ownPost(userID, postID uint) (*model.Post, error) {
	post, err := b.visiblePost(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只能操作自己的帖子")
	}
	return post, nil
}

// UpdatePost 修改帖子，写入 updated_at
func (b *boardService) UpdatePost(userID, postID uint, req request.UpdatePostRequest) (*respond.PostRespond, error) {
	if _, err := b.ownPost(userID, postID); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.ManualTags != nil {
		fields["manual_tags"] = datatypes.JSONSlice[string](req.ManualTags)
	}
	if len(fields) > 0 {
		fields["updated_at"] = b.now()
		if err := b.repos.Post.Updates(postID, fields); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}
	post, err := b.visiblePost(postID)
	if err != nil {
		return nil, err
	}
	return b.singlePost(userID, post)
}

// DeletePost 软删除，评论保留
func (b *boardService) DeletePost(userID, postID uint) (*respond.MessageRespond, error) {
	if _, err := b.ownPost(userID, postID); err != nil {
		return nil, err
	}
	if err := b.repos.Post.SoftDelete(postID); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("post deleted", zap.Uint("post_id", postID), zap.Uint("user_id", userID))
	return &respond.MessageRespond{Message: "帖子已删除"}, nil
}
