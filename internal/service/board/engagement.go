package board

import (
	"fmt"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

// TogglePostLike 点赞或取消点赞
// 点赞时通知作者，点赞数首次达到阈值时额外发送一次 excellent_post
func (b *boardService) TogglePostLike(userID, postID uint) (*respond.LikeRespond, error) {
	post, err := b.visiblePost(postID)
	if err != nil {
		return nil, err
	}

	rsp := &respond.LikeRespond{}
	var notifications []model.Notification
	err = b.repos.Transaction(func(txRepos *repository.Repositories) error {
		like, err := txRepos.Engagement.FindPostLike(postID, userID)
		if err != nil && !errorx.IsNotFound(err) {
			return err
		}
		if like != nil {
			if err := txRepos.Engagement.DeletePostLike(like.ID); err != nil {
				return err
			}
			rsp.LikeCount, err = txRepos.Post.AdjustCounter(postID, "like_count", -1)
			return err
		}

		if err := txRepos.Engagement.CreatePostLike(&model.PostLike{PostID: postID, UserID: userID}); err != nil {
			return err
		}
		if rsp.LikeCount, err = txRepos.Post.AdjustCounter(postID, "like_count", 1); err != nil {
			return err
		}
		rsp.IsLiked = true

		if post.UserID != userID {
			n := model.Notification{
				UserID:   post.UserID,
				SenderID: &userID,
				Type:     model.NotificationLike,
				PostID:   &post.ID,
				Content:  fmt.Sprintf("你的帖子「%s」收到了点赞", post.Title),
			}
			if err := txRepos.Notification.Create(&n); err != nil {
				return err
			}
			notifications = append(notifications, n)
		}
		if rsp.LikeCount >= constants.EXCELLENT_POST_THRESHOLD {
			sent, err := txRepos.Notification.Exists(post.UserID, model.NotificationExcellentPost, post.ID)
			if err != nil {
				return err
			}
			if !sent {
				n := model.Notification{
					UserID:  post.UserID,
					Type:    model.NotificationExcellentPost,
					PostID:  &post.ID,
					Content: fmt.Sprintf("你的帖子「%s」获得了 %d 个赞，成为优秀帖子", post.Title, constants.EXCELLENT_POST_THRESHOLD),
				}
				if err := txRepos.Notification.Create(&n); err != nil {
					return err
				}
				notifications = append(notifications, n)
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	b.notifier.Push(notifications...)
	return rsp, nil
}

// ToggleCommentLike 评论点赞或取消点赞
func (b *boardService) ToggleCommentLike(userID, commentID uint) (*respond.LikeRespond, error) {
	if _, err := b.repos.Comment.FindByID(commentID); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errCommentNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.LikeRespond{}
	err := b.repos.Transaction(func(txRepos *repository.Repositories) error {
		like, err := txRepos.Engagement.FindCommentLike(commentID, userID)
		if err != nil && !errorx.IsNotFound(err) {
			return err
		}
		if like != nil {
			if err := txRepos.Engagement.DeleteCommentLike(like.ID); err != nil {
				return err
			}
			rsp.LikeCount, err = txRepos.Comment.AdjustCounter(commentID, "like_count", -1)
			return err
		}
		if err := txRepos.Engagement.CreateCommentLike(&model.CommentLike{CommentID: commentID, UserID: userID}); err != nil {
			return err
		}
		rsp.IsLiked = true
		rsp.LikeCount, err = txRepos.Comment.AdjustCounter(commentID, "like_count", 1)
		return err
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return rsp, nil
}

// ToggleBookmark 收藏或取消收藏
func (b *boardService) ToggleBookmark(userID, postID uint) (*respond.BookmarkRespond, error) {
	if _, err := b.visiblePost(postID); err != nil {
		return nil, err
	}
	bookmark, err := b.repos.Engagement.FindBookmark(postID, userID)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if bookmark != nil {
		if err := b.repos.Engagement.DeleteBookmark(bookmark.ID); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.BookmarkRespond{IsBookmarked: false}, nil
	}
	if err := b.repos.Engagement.CreateBookmark(&model.PostBookmark{PostID: postID, UserID: userID}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.BookmarkRespond{IsBookmarked: true}, nil
}

// ListBookmarks 我收藏的帖子，按收藏时间倒序
func (b *boardService) ListBookmarks(userID uint, q request.PageQuery) (*respond.PostListRespond, error) {
	page, pageSize := q.Normalize()
	posts, total, err := b.repos.Post.ListBookmarked(userID, page, pageSize)
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

// ReportPost 举报帖子，每人每帖一次
// 举报数达到阈值且帖子未隐藏时隐藏帖子，每个帖子只通知作者一次
func (b *boardService) ReportPost(userID, postID uint, req request.ReportPostRequest) (*respond.MessageRespond, error) {
	post, err := b.repos.Post.FindAny(postID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errPostNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if post.DeletedAt.Valid {
		return nil, errPostNotFound
	}
	if post.UserID == userID {
		return nil, errorx.New(errorx.CodeBadRequest, "不能举报自己的帖子")
	}
	reported, err := b.repos.Engagement.ReportExists(postID, userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if reported {
		return nil, errorx.New(errorx.CodeBadRequest, "已经举报过该帖子")
	}

	var notifications []model.Notification
	err = b.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Engagement.CreateReport(&model.PostReport{
			PostID:     postID,
			ReporterID: userID,
			Reason:     req.Reason,
			Details:    req.Details,
		}); err != nil {
			return err
		}
		count, err := txRepos.Post.AdjustCounter(postID, "report_count", 1)
		if err != nil {
			return err
		}
		current, err := txRepos.Post.FindAny(postID)
		if err != nil {
			return err
		}
		if count < constants.REPORT_HIDE_THRESHOLD || current.IsHidden {
			return nil
		}
		if err := txRepos.Post.Updates(postID, map[string]any{"is_hidden": true}); err != nil {
			return err
		}
		// 管理员恢复后再次被隐藏时不重复通知
		sent, err := txRepos.Notification.Exists(post.UserID, model.NotificationReportHidden, post.ID)
		if err != nil || sent {
			return err
		}
		n := model.Notification{
			UserID:  post.UserID,
			Type:    model.NotificationReportHidden,
			PostID:  &post.ID,
			Content: fmt.Sprintf("你的帖子「%s」因多次被举报已被隐藏", post.Title),
		}
		if err := txRepos.Notification.Create(&n); err != nil {
			return err
		}
		notifications = append(notifications, n)
		return nil
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if len(notifications) > 0 {
		zap.L().Info("post hidden by reports", zap.Uint("post_id", postID))
	}
	b.notifier.Push(notifications...)
	return &respond.MessageRespond{Message: "举报已提交"}, nil
}
