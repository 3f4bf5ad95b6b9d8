package request

import "time"

// CreateSessionRequest 开始练习
type CreateSessionRequest struct {
	PracticeDate string  `json:"practice_date" binding:"required,datetime=2006-01-02"`
	InstrumentID *uint   `json:"instrument_id"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// EndSessionRequest 结束练习
// 未传 actual_play_time 时按 end_time - start_time 计算
type EndSessionRequest struct {
	EndTime        *time.Time `json:"end_time"`
	ActualPlayTime *int       `json:"actual_play_time" binding:"omitempty,min=0"`
	InstrumentID   *uint      `json:"instrument_id"`
	Notes          *string    `json:"notes" binding:"omitempty,max=2000"`
}

// ListSessionsQuery 练习记录列表
// UserID 非 0 时查看同群成员的记录
type ListSessionsQuery struct {
	PageQuery
	StartDate    string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	InstrumentID uint   `form:"instrument_id"`
	UserID       uint   `form:"user_id"`
}

// WeeklyAverageQuery 同类用户周平均
type WeeklyAverageQuery struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}
