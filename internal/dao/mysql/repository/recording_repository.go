package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type recordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository 创建录音 Repository
func NewRecordingRepository(db *gorm.DB) RecordingRepository {
	return &recordingRepository{db: db}
}

func (r *recordingRepository) Create(rec *model.RecordingFile) error {
	if err := r.db.Create(rec).Error; err != nil {
		return wrapDBError(err, "创建录音记录")
	}
	return nil
}

func (r *recordingRepository) FindByID(id uint) (*model.RecordingFile, error) {
	var rec model.RecordingFile
	if err := r.db.First(&rec, "recording_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询录音 id=%d", id)
	}
	return &rec, nil
}

func (r *recordingRepository) ListBySession(sessionID uint) ([]model.RecordingFile, error) {
	var recs []model.RecordingFile
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询录音列表 session_id=%d", sessionID)
	}
	return recs, nil
}

func (r *recordingRepository) SoftDelete(id uint) error {
	if err := r.db.Delete(&model.RecordingFile{}, "recording_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除录音 id=%d", id)
	}
	return nil
}
