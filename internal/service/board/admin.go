package board

import (
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

func adminPostRespond(p *model.Post, comments int64) respond.AdminPostRespond {
	rsp := respond.AdminPostRespond{
		PostRespond: postRespond(p, comments, false, false),
		ReportCount: p.ReportCount,
		IsHidden:    p.IsHidden,
	}
	if p.DeletedAt.Valid {
		deletedAt := p.DeletedAt.Time
		rsp.DeletedAt = &deletedAt
	}
	return rsp
}

func (b *boardService) anyPost(postID uint) (*model.Post, error) {
	post, err := b.repos.Post.FindAny(postID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errPostNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return post, nil
}

// AdminListPosts 管理员帖子列表，status 默认 all
func (b *boardService) AdminListPosts(q request.AdminListPostsQuery) (*respond.AdminPostListRespond, error) {
	page, pageSize := q.Normalize()
	status := q.Status
	if status == "" {
		status = repository.PostStatusAll
	}
	posts, total, err := b.repos.Post.List(repository.PostFilter{
		Search: q.Search,
		Status: status,
	}, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := b.repos.Comment.CountByPosts(ids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.AdminPostListRespond{
		Posts:    make([]respond.AdminPostRespond, 0, len(posts)),
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}
	for i := range posts {
		rsp.Posts = append(rsp.Posts, adminPostRespond(&posts[i], counts[posts[i].ID]))
	}
	return rsp, nil
}

// AdminGetPost 管理员查看帖子，包含隐藏与已删除
func (b *boardService) AdminGetPost(postID uint) (*respond.AdminPostRespond, error) {
	post, err := b.anyPost(postID)
	if err != nil {
		return nil, err
	}
	counts, err := b.repos.Comment.CountByPosts([]uint{postID})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := adminPostRespond(post, counts[postID])
	return &rsp, nil
}

// AdminSetPostStatus 隐藏或恢复帖子
func (b *boardService) AdminSetPostStatus(adminID, postID uint, req request.AdminPostStatusRequest) (*respond.AdminPostRespond, error) {
	if _, err := b.anyPost(postID); err != nil {
		return nil, err
	}
	if err := b.repos.Post.Updates(postID, map[string]any{"is_hidden": *req.IsHidden}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("post status changed by admin",
		zap.Uint("admin_id", adminID),
		zap.Uint("post_id", postID),
		zap.Bool("is_hidden", *req.IsHidden),
	)
	return b.AdminGetPost(postID)
}

// AdminDeletePost 物理删除帖子及其评论、点赞、收藏、举报
func (b *boardService) AdminDeletePost(adminID, postID uint) (*respond.MessageRespond, error) {
	if _, err := b.anyPost(postID); err != nil {
		return nil, err
	}
	err := b.repos.Transaction(func(txRepos *repository.Repositories) error {
		return txRepos.Post.HardDelete(postID)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("post hard deleted", zap.Uint("admin_id", adminID), zap.Uint("post_id", postID))
	return &respond.MessageRespond{Message: "帖子已永久删除"}, nil
}
