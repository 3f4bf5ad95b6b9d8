package board

import (
	"fmt"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

func commentRespond(c *model.Comment, liked bool) respond.CommentRespond {
	rsp := respond.CommentRespond{
		CommentID:       c.ID,
		PostID:          c.PostID,
		UserID:          c.UserID,
		Author:          respond.NewUserBrief(&c.User),
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		LikeCount:       c.LikeCount,
		IsLiked:         liked,
		Replies:         []respond.CommentRespond{},
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.DeletedAt.Valid {
		deletedAt := c.DeletedAt.Time
		rsp.DeletedAt = &deletedAt
		rsp.Content = ""
	}
	return rsp
}

// buildCommentTree 按 parent_comment_id 组装评论树，同级保持创建顺序
func buildCommentTree(comments []model.Comment, liked map[uint]bool) []respond.CommentRespond {
	known := make(map[uint]bool, len(comments))
	for _, c := range comments {
		known[c.ID] = true
	}
	children := make(map[uint][]int)
	roots := make([]int, 0)
	for i, c := range comments {
		if c.ParentCommentID != nil && known[*c.ParentCommentID] {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], i)
			continue
		}
		roots = append(roots, i)
	}

	var build func(idx int) respond.CommentRespond
	build = func(idx int) respond.CommentRespond {
		node := commentRespond(&comments[idx], liked[comments[idx].ID])
		for _, child := range children[comments[idx].ID] {
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}
	tree := make([]respond.CommentRespond, 0, len(roots))
	for _, idx := range roots {
		tree = append(tree, build(idx))
	}
	return tree
}

// ListComments 评论树，已删除评论保留位置但不返回内容
func (b *boardService) ListComments(userID, postID uint) (*respond.CommentListRespond, error) {
	if _, err := b.visiblePost(postID); err != nil {
		return nil, err
	}
	comments, err := b.repos.Comment.ListByPost(postID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	liked := map[uint]bool{}
	if userID != 0 && len(comments) > 0 {
		ids := make([]uint, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		if liked, err = b.repos.Engagement.LikedCommentIDs(userID, ids); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}

	var total int64
	for _, c := range comments {
		if !c.DeletedAt.Valid {
			total++
		}
	}
	return &respond.CommentListRespond{
		Comments: buildCommentTree(comments, liked),
		Total:    total,
	}, nil
}

// CreateComment 发表评论或回复
// 帖子作者收到 comment，父评论作者收到 reply，两者互不影响，不通知自己
func (b *boardService) CreateComment(userID, postID uint, req request.CreateCommentRequest) (*respond.CommentRespond, error) {
	post, err := b.visiblePost(postID)
	if err != nil {
		return nil, err
	}

	var parent *model.Comment
	if req.ParentCommentID != nil {
		parent, err = b.repos.Comment.FindAny(*req.ParentCommentID)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "父评论不存在")
			}
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if parent.PostID != postID {
			return nil, errorx.New(errorx.CodeBadRequest, "父评论不属于该帖子")
		}
		if parent.DeletedAt.Valid {
			return nil, errorx.New(errorx.CodeBadRequest, "不能回复已删除的评论")
		}
	}

	comment := &model.Comment{
		PostID:          postID,
		UserID:          userID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	}
	var notifications []model.Notification
	err = b.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Comment.Create(comment); err != nil {
			return err
		}
		if post.UserID != userID {
			n := model.Notification{
				UserID:    post.UserID,
				SenderID:  &userID,
				Type:      model.NotificationComment,
				PostID:    &post.ID,
				CommentID: &comment.ID,
				Content:   fmt.Sprintf("你的帖子「%s」有新评论", post.Title),
			}
			if err := txRepos.Notification.Create(&n); err != nil {
				return err
			}
			notifications = append(notifications, n)
		}
		if parent != nil && parent.UserID != userID {
			n := model.Notification{
				UserID:    parent.UserID,
				SenderID:  &userID,
				Type:      model.NotificationReply,
				PostID:    &post.ID,
				CommentID: &comment.ID,
				Content:   "你的评论有新回复",
			}
			if err := txRepos.Notification.Create(&n); err != nil {
				return err
			}
			notifications = append(notifications, n)
		}
		return nil
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	b.notifier.Push(notifications...)

	saved, err := b.repos.Comment.FindByID(comment.ID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := commentRespond(saved, false)
	return &rsp, nil
}

// ownComment 只有作者可以修改或删除
func (b *boardService) ownComment(userID, commentID uint) (*model.Comment, error) {
	comment, err := b.repos.Comment.FindByID(commentID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errCommentNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if comment.UserID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只能操作自己的评论")
	}
	return comment, nil
}

// UpdateComment 修改评论内容
func (b *boardService) UpdateComment(userID, commentID uint, req request.UpdateCommentRequest) (*respond.CommentRespond, error) {
	comment, err := b.ownComment(userID, commentID)
	if err != nil {
		return nil, err
	}
	now := b.now()
	if err := b.repos.Comment.Updates(commentID, map[string]any{
		"content":    req.Content,
		"updated_at": now,
	}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	comment.Content = req.Content
	comment.UpdatedAt = &now

	liked, err := b.repos.Engagement.LikedCommentIDs(userID, []uint{commentID})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := commentRespond(comment, liked[commentID])
	return &rsp, nil
}

// DeleteComment 软删除，回复保留
func (b *boardService) DeleteComment(userID, commentID uint) (*respond.MessageRespond, error) {
	if _, err := b.ownComment(userID, commentID); err != nil {
		return nil, err
	}
	if err := b.repos.Comment.SoftDelete(commentID); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "评论已删除"}, nil
}
