package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 管理员帖子列表状态
const (
	PostStatusAll     = "all"
	PostStatusVisible = "visible"
	PostStatusHidden  = "hidden"
	PostStatusDeleted = "deleted"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子 Repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 创建帖子
func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Omit("User").Create(post).Error; err != nil {
		return wrapDBError(err, "创建帖子")
	}
	return nil
}

// FindVisible 查询未删除且未隐藏的帖子
func (r *postRepository) FindVisible(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Preload("User.SelectedAchievement").
		Where("is_hidden = ?", false).
		First(&post, "post_id = ?", id).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 id=%d", id)
	}
	return &post, nil
}

// FindAny 查询帖子，包含已删除与隐藏
func (r *postRepository) FindAny(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Unscoped().
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("User.SelectedAchievement").
		First(&post, "post_id = ?", id).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 id=%d", id)
	}
	return &post, nil
}

// List 帖子列表，按创建时间倒序
func (r *postRepository) List(filter PostFilter, page, pageSize int) ([]model.Post, int64, error) {
	var (
		posts []model.Post
		total int64
	)
	q := r.db.Model(&model.Post{})
	switch filter.Status {
	case PostStatusAll:
		q = q.Unscoped()
	case PostStatusHidden:
		q = q.Where("is_hidden = ?", true)
	case PostStatusDeleted:
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	default:
		q = q.Where("is_hidden = ?", false)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("manual_tags").Contains(filter.Tag))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计帖子数量")
	}
	err := q.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("User.SelectedAchievement").
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询帖子列表")
	}
	return posts, total, nil
}

// ListBookmarked 收藏的可见帖子，按收藏时间倒序
func (r *postRepository) ListBookmarked(userID uint, page, pageSize int) ([]model.Post, int64, error) {
	var (
		posts []model.Post
		total int64
	)
	q := r.db.Model(&model.Post{}).
		Joins("JOIN post_bookmarks pb ON pb.post_id = posts.post_id AND pb.user_id = ?", userID).
		Where("posts.is_hidden = ?", false)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计收藏帖子")
	}
	err := q.Select("posts.*").
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("User.SelectedAchievement").
		Order("pb.created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询收藏帖子")
	}
	return posts, total, nil
}

// Updates 更新帖子字段，包含已删除帖子
func (r *postRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Unscoped().Model(&model.Post{}).Where("post_id = ?", id).UpdateColumns(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新帖子 id=%d", id)
	}
	return nil
}

// AdjustCounter 调整 view_count / like_count / report_count
func (r *postRepository) AdjustCounter(id uint, column string, delta int) (int, error) {
	return adjustCounter(r.db, "posts", "post_id", id, column, delta)
}

// SoftDelete 软删除帖子，评论保留
func (r *postRepository) SoftDelete(id uint) error {
	if err := r.db.Delete(&model.Post{}, "post_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除帖子 id=%d", id)
	}
	return nil
}

// HardDelete 物理删除帖子及关联数据
func (r *postRepository) HardDelete(id uint) error {
	commentIDs := r.db.Unscoped().Model(&model.Comment{}).Select("comment_id").Where("post_id = ?", id)
	steps := []struct {
		desc string
		run  func() error
	}{
		{"评论点赞", func() error {
			return r.db.Where("comment_id IN (?)", commentIDs).Delete(&model.CommentLike{}).Error
		}},
		{"评论", func() error { return r.db.Unscoped().Where("post_id = ?", id).Delete(&model.Comment{}).Error }},
		{"点赞", func() error { return r.db.Where("post_id = ?", id).Delete(&model.PostLike{}).Error }},
		{"收藏", func() error { return r.db.Where("post_id = ?", id).Delete(&model.PostBookmark{}).Error }},
		{"举报", func() error { return r.db.Where("post_id = ?", id).Delete(&model.PostReport{}).Error }},
		{"帖子", func() error { return r.db.Unscoped().Delete(&model.Post{}, "post_id = ?", id).Error }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return wrapDBErrorf(err, "物理删除%s post_id=%d", step.desc, id)
		}
	}
	return nil
}
