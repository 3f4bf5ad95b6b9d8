package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository 创建点赞、收藏、举报 Repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ==================== 帖子点赞 ====================

func (r *engagementRepository) FindPostLike(postID, userID uint) (*model.PostLike, error) {
	var like model.PostLike
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子点赞 post_id=%d user_id=%d", postID, userID)
	}
	return &like, nil
}

func (r *engagementRepository) CreatePostLike(like *model.PostLike) error {
	if err := r.db.Create(like).Error; err != nil {
		return wrapDBError(err, "创建帖子点赞")
	}
	return nil
}

func (r *engagementRepository) DeletePostLike(id uint) error {
	if err := r.db.Delete(&model.PostLike{}, "like_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "取消帖子点赞 id=%d", id)
	}
	return nil
}

func (r *engagementRepository) LikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	return r.markedIDs(&model.PostLike{}, "post_id", userID, postIDs)
}

// ==================== 评论点赞 ====================

func (r *engagementRepository) FindCommentLike(commentID, userID uint) (*model.CommentLike, error) {
	var like model.CommentLike
	if err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询评论点赞 comment_id=%d user_id=%d", commentID, userID)
	}
	return &like, nil
}

func (r *engagementRepository) CreateCommentLike(like *model.CommentLike) error {
	if err := r.db.Create(like).Error; err != nil {
		return wrapDBError(err, "创建评论点赞")
	}
	return nil
}

func (r *engagementRepository) DeleteCommentLike(id uint) error {
	if err := r.db.Delete(&model.CommentLike{}, "like_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "取消评论点赞 id=%d", id)
	}
	return nil
}

func (r *engagementRepository) LikedCommentIDs(userID uint, commentIDs []uint) (map[uint]bool, error) {
	return r.markedIDs(&model.CommentLike{}, "comment_id", userID, commentIDs)
}

// ==================== 收藏 ====================

func (r *engagementRepository) FindBookmark(postID, userID uint) (*model.PostBookmark, error) {
	var b model.PostBookmark
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&b).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询收藏 post_id=%d user_id=%d", postID, userID)
	}
	return &b, nil
}

func (r *engagementRepository) CreateBookmark(b *model.PostBookmark) error {
	if err := r.db.Create(b).Error; err != nil {
		return wrapDBError(err, "创建收藏")
	}
	return nil
}

func (r *engagementRepository) DeleteBookmark(id uint) error {
	if err := r.db.Delete(&model.PostBookmark{}, "bookmark_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "取消收藏 id=%d", id)
	}
	return nil
}

func (r *engagementRepository) BookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	return r.markedIDs(&model.PostBookmark{}, "post_id", userID, postIDs)
}

// ==================== 举报 ====================

func (r *engagementRepository) ReportExists(postID, reporterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostReport{}).
		Where("post_id = ? AND reporter_id = ?", postID, reporterID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "检查举报记录")
	}
	return count > 0, nil
}

func (r *engagementRepository) CreateReport(report *model.PostReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return wrapDBError(err, "创建举报")
	}
	return nil
}

// markedIDs 返回 ids 中被 userID 标记过的集合
func (r *engagementRepository) markedIDs(table any, column string, userID uint, ids []uint) (map[uint]bool, error) {
	marked := make(map[uint]bool, len(ids))
	if userID == 0 || len(ids) == 0 {
		return marked, nil
	}
	var hits []uint
	err := r.db.Model(table).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &hits).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "批量查询 %s", column)
	}
	for _, id := range hits {
		marked[id] = true
	}
	return marked, nil
}
