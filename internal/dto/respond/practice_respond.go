package respond

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/model"
)

// SessionRespond 练习记录
type SessionRespond struct {
	SessionID      uint       `json:"session_id"`
	UserID         uint       `json:"user_id"`
	PracticeDate   string     `json:"practice_date"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	ActualPlayTime int        `json:"actual_play_time"`
	Status         string     `json:"status"`
	InstrumentID   *uint      `json:"instrument_id"`
	Instrument     *string    `json:"instrument"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SessionListRespond 练习记录列表
type SessionListRespond struct {
	Sessions []SessionRespond `json:"sessions"`
	PageInfo
}

// PracticeStatisticsRespond 个人练习统计
type PracticeStatisticsRespond struct {
	TotalPracticeTime  int64    `json:"total_practice_time"`
	TotalSessions      int64    `json:"total_sessions"`
	ConsecutiveDays    int      `json:"consecutive_days"`
	LastPracticeDate   *string  `json:"last_practice_date"`
	AverageSessionTime *float64 `json:"average_session_time"`
}

// WeeklyAverageRespond 同类用户周平均
// DailyAverages 从 start_date 开始共 7 天
type WeeklyAverageRespond struct {
	DailyAverages         []int64 `json:"daily_averages"`
	ConsistencyPercentage int     `json:"consistency_percentage"`
	TotalUsers            int     `json:"total_users"`
}

// RecordingRespond 练习录音
type RecordingRespond struct {
	RecordingID uint      `json:"recording_id"`
	SessionID   uint      `json:"session_id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSessionRespond 转换练习记录，需预加载 Instrument
func NewSessionRespond(s *model.PracticeSession) SessionRespond {
	rsp := SessionRespond{
		SessionID:      s.ID,
		UserID:         s.UserID,
		PracticeDate:   s.PracticeDate,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		ActualPlayTime: s.ActualPlayTime,
		Status:         s.Status,
		InstrumentID:   s.InstrumentID,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
	if s.Instrument != nil {
		name := s.Instrument.Name
		rsp.Instrument = &name
	}
	return rsp
}
