// Package respond 定义 HTTP 响应数据结构
package respond

// PageInfo 分页信息
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPageInfo 计算总页数
func NewPageInfo(total int64, page, pageSize int) PageInfo {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageInfo{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// MessageRespond 仅包含提示信息的响应
type MessageRespond struct {
	Message string `json:"message"`
}
