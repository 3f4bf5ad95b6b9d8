package respond

import "time"

// PostRespond 帖子
type PostRespond struct {
	PostID       uint             `json:"post_id"`
	UserID       uint             `json:"user_id"`
	Author       UserBriefRespond `json:"author"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags"`
	ViewCount    int              `json:"view_count"`
	LikeCount    int              `json:"like_count"`
	CommentCount int64            `json:"comment_count"`
	IsLiked      bool             `json:"is_liked"`
	IsBookmarked bool             `json:"is_bookmarked"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at"`
}

// PostListRespond 帖子列表
type PostListRespond struct {
	Posts []PostRespond `json:"posts"`
	PageInfo
}

// AdminPostRespond 管理员视图，带举报与删除状态
type AdminPostRespond struct {
	PostRespond
	ReportCount int        `json:"report_count"`
	IsHidden    bool       `json:"is_hidden"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// AdminPostListRespond 管理员帖子列表
type AdminPostListRespond struct {
	Posts []AdminPostRespond `json:"posts"`
	PageInfo
}

// CommentRespond 评论，Replies 为直接回复
// 已删除评论保留位置，内容置空
type CommentRespond struct {
	CommentID       uint             `json:"comment_id"`
	PostID          uint             `json:"post_id"`
	UserID          uint             `json:"user_id"`
	Author          UserBriefRespond `json:"author"`
	ParentCommentID *uint            `json:"parent_comment_id"`
	Content         string           `json:"content"`
	LikeCount       int              `json:"like_count"`
	IsLiked         bool             `json:"is_liked"`
	Replies         []CommentRespond `json:"replies"`
	DeletedAt       *time.Time       `json:"deleted_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at"`
}

// CommentListRespond 评论树，Total 为未删除评论数
type CommentListRespond struct {
	Comments []CommentRespond `json:"comments"`
	Total    int64            `json:"total"`
}

// LikeRespond 点赞切换结果
type LikeRespond struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}

// BookmarkRespond 收藏切换结果
type BookmarkRespond struct {
	IsBookmarked bool `json:"is_bookmarked"`
}
