package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 帖子分类
const (
	CategoryGeneral  = "general"
	CategoryTip      = "tip"
	CategoryQuestion = "question"
	CategoryFree     = "free"
)

// Post 帖子
// UpdatedAt 只在标题或内容修改时写入，计数器变化不影响
type Post struct {
	ID          uint                        `gorm:"column:post_id;primaryKey"`
	UserID      uint                        `gorm:"column:user_id;index;not null"`
	Title       string                      `gorm:"column:title;type:varchar(200);not null"`
	Content     string                      `gorm:"column:content;type:text;not null"`
	Category    string                      `gorm:"column:category;type:varchar(20);index;not null;default:general"`
	ManualTags  datatypes.JSONSlice[string] `gorm:"column:manual_tags"`
	ViewCount   int                         `gorm:"column:view_count;not null;default:0"`
	LikeCount   int                         `gorm:"column:like_count;not null;default:0"`
	ReportCount int                         `gorm:"column:report_count;not null;default:0"`
	IsHidden    bool                        `gorm:"column:is_hidden;index;not null;default:false"`
	CreatedAt   time.Time                   `gorm:"column:created_at"`
	UpdatedAt   *time.Time                  `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt   gorm.DeletedAt              `gorm:"column:deleted_at;index"`

	User User `gorm:"foreignKey:UserID"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment 评论，ParentCommentID 为空时是顶层评论
type Comment struct {
	ID              uint           `gorm:"column:comment_id;primaryKey"`
	PostID          uint           `gorm:"column:post_id;index;not null"`
	UserID          uint           `gorm:"column:user_id;index;not null"`
	ParentCommentID *uint          `gorm:"column:parent_comment_id;index"`
	Content         string         `gorm:"column:content;type:text;not null"`
	LikeCount       int            `gorm:"column:like_count;not null;default:0"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       *time.Time     `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`

	User User `gorm:"foreignKey:UserID"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostLike 帖子点赞，(post_id, user_id) 唯一
type PostLike struct {
	ID        uint      `gorm:"column:like_id;primaryKey"`
	PostID    uint      `gorm:"column:post_id;uniqueIndex:uk_post_like;not null"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:uk_post_like;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// CommentLike 评论点赞
type CommentLike struct {
	ID        uint      `gorm:"column:like_id;primaryKey"`
	CommentID uint      `gorm:"column:comment_id;uniqueIndex:uk_comment_like;not null"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:uk_comment_like;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// PostBookmark 帖子收藏
type PostBookmark struct {
	ID        uint      `gorm:"column:bookmark_id;primaryKey"`
	PostID    uint      `gorm:"column:post_id;uniqueIndex:uk_post_bookmark;not null"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:uk_post_bookmark;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PostBookmark) TableName() string {
	return "post_bookmarks"
}

// PostReport 帖子举报，每人每帖一次
type PostReport struct {
	ID         uint      `gorm:"column:report_id;primaryKey"`
	PostID     uint      `gorm:"column:post_id;uniqueIndex:uk_post_report;not null"`
	ReporterID uint      `gorm:"column:reporter_id;uniqueIndex:uk_post_report;not null"`
	Reason     string    `gorm:"column:reason;type:varchar(50);not null"`
	Details    *string   `gorm:"column:details;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (PostReport) TableName() string {
	return "post_reports"
}
