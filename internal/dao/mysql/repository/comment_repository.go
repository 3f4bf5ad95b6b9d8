package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论 Repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Omit("User").Create(comment).Error; err != nil {
		return wrapDBError(err, "创建评论")
	}
	return nil
}

// FindByID 查询未删除评论
func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("User").Preload("User.SelectedAchievement").First(&comment, "comment_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询评论 id=%d", id)
	}
	return &comment, nil
}

// FindAny 查询评论，包含已删除
func (r *commentRepository) FindAny(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Unscoped().First(&comment, "comment_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询评论 id=%d", id)
	}
	return &comment, nil
}

// ListByPost 帖子下全部评论，包含已删除
func (r *commentRepository) ListByPost(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Unscoped().
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("User.SelectedAchievement").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("comment_id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询评论列表 post_id=%d", postID)
	}
	return comments, nil
}

// CountByPosts 批量统计未删除评论数
func (r *commentRepository) CountByPosts(postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.Model(&model.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "批量统计评论数")
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *commentRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Comment{}).Where("comment_id = ?", id).UpdateColumns(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新评论 id=%d", id)
	}
	return nil
}

func (r *commentRepository) AdjustCounter(id uint, column string, delta int) (int, error) {
	return adjustCounter(r.db, "comments", "comment_id", id, column, delta)
}

// SoftDelete 软删除评论，回复保留
func (r *commentRepository) SoftDelete(id uint) error {
	if err := r.db.Delete(&model.Comment{}, "comment_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除评论 id=%d", id)
	}
	return nil
}
