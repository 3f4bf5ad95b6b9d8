package model

import (
	"time"

	"gorm.io/gorm"
)

// 练习状态
const (
	PracticeInProgress = "in_progress"
	PracticeCompleted  = "completed"
)

// PracticeSession 练习记录
// 每个用户同时最多一条 in_progress 记录，由业务层保证
type PracticeSession struct {
	ID             uint       `gorm:"column:session_id;primaryKey"`
	UserID         uint       `gorm:"column:user_id;index:idx_practice_user_date;not null"`
	PracticeDate   string     `gorm:"column:practice_date;type:char(10);index:idx_practice_user_date;not null;comment:YYYY-MM-DD"`
	StartTime      time.Time  `gorm:"column:start_time;not null"`
	EndTime        *time.Time `gorm:"column:end_time"`
	ActualPlayTime int        `gorm:"column:actual_play_time;not null;default:0;comment:实际演奏秒数"`
	Status         string     `gorm:"column:status;type:varchar(20);index;not null;default:in_progress"`
	InstrumentID   *uint      `gorm:"column:instrument_id"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`

	Instrument *Instrument `gorm:"foreignKey:InstrumentID"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// RecordingFile 练习录音，文件本体存于对象存储
type RecordingFile struct {
	ID          uint           `gorm:"column:recording_id;primaryKey"`
	SessionID   uint           `gorm:"column:session_id;index;not null"`
	UserID      uint           `gorm:"column:user_id;index;not null"`
	ObjectKey   string         `gorm:"column:object_key;type:varchar(500);not null"`
	FileName    string         `gorm:"column:file_name;type:varchar(255);not null"`
	FileSize    int64          `gorm:"column:file_size;not null"`
	ContentType string         `gorm:"column:content_type;type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (RecordingFile) TableName() string {
	return "recording_files"
}
