// Package handler 提供 HTTP 请求处理器
// 本文件处理讨论区相关的 API 请求
package handler

import (
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/service"

	"github.com/gin-gonic/gin"
)

// BoardHandler 帖子、评论、点赞、收藏与举报
type BoardHandler struct {
	boardSvc service.BoardService
}

// NewBoardHandler 创建讨论区处理器实例
func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc}
}

// CreatePost 发帖（201）
// POST /api/board/posts
func (h *BoardHandler) CreatePost(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.CreatePost(middleware.CurrentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// ListPosts 帖子列表，隐藏和已删除的帖子不返回
// GET /api/board/posts?page=&page_size=&category=&tag=&search=
func (h *BoardHandler) ListPosts(c *gin.Context) {
	var q request.ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.ListPosts(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPost 帖子详情，浏览数 +1
// GET /api/board/posts/:id
func (h *BoardHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.GetPost(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdatePost PUT /api/board/posts/:id（仅作者）
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.UpdatePost(middleware.CurrentUserID(c), postID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeletePost DELETE /api/board/posts/:id（仅作者，软删除）
func (h *BoardHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.DeletePost(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListComments 评论树
// GET /api/board/posts/:id/comments
func (h *BoardHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.ListComments(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateComment 评论或回复（201）
// POST /api/board/posts/:id/comments
func (h *BoardHandler) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.CreateComment(middleware.CurrentUserID(c), postID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// UpdateComment PUT /api/board/comments/:id
func (h *BoardHandler) UpdateComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.UpdateComment(middleware.CurrentUserID(c), commentID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteComment DELETE /api/board/comments/:id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.DeleteComment(middleware.CurrentUserID(c), commentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// TogglePostLike POST /api/board/posts/:id/likes
func (h *BoardHandler) TogglePostLike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.TogglePostLike(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ToggleCommentLike POST /api/board/comments/:id/likes
func (h *BoardHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.ToggleCommentLike(middleware.CurrentUserID(c), commentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ToggleBookmark POST /api/board/posts/:id/bookmarks
func (h *BoardHandler) ToggleBookmark(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.ToggleBookmark(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListBookmarks GET /api/board/bookmarks
func (h *BoardHandler) ListBookmarks(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.ListBookmarks(middleware.CurrentUserID(c), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ReportPost 举报帖子，每人每帖一次
// POST /api/board/posts/:id/report
func (h *BoardHandler) ReportPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.ReportPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.ReportPost(middleware.CurrentUserID(c), postID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminListPosts GET /api/board/admin/posts?status=all|visible|hidden|deleted
func (h *BoardHandler) AdminListPosts(c *gin.Context) {
	var q request.AdminListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.AdminListPosts(q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminGetPost GET /api/board/admin/posts/:id
func (h *BoardHandler) AdminGetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.AdminGetPost(postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminSetPostStatus 隐藏或恢复帖子
// PATCH /api/board/admin/posts/:id/status
func (h *BoardHandler) AdminSetPostStatus(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AdminPostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.boardSvc.AdminSetPostStatus(middleware.CurrentUserID(c), postID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AdminDeletePost 物理删除帖子
// DELETE /api/board/admin/posts/:id
func (h *BoardHandler) AdminDeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.boardSvc.AdminDeletePost(middleware.CurrentUserID(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
