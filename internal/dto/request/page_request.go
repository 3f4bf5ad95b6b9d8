// Package request 定义 HTTP 请求参数结构
package request

import "github.com/Min-owo17/Mysic/pkg/constants"

// PageQuery 分页参数，page 从 1 开始
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize 小于 1 时使用默认值，page_size 上限 100
func (q PageQuery) Normalize() (page, pageSize int) {
	page, pageSize = q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constants.DEFAULT_PAGE_SIZE
	}
	if pageSize > constants.MAX_PAGE_SIZE {
		pageSize = constants.MAX_PAGE_SIZE
	}
	return page, pageSize
}
