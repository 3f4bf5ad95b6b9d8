package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type practiceRepository struct {
	db *gorm.DB
}

// NewPracticeRepository 创建练习记录 Repository
func NewPracticeRepository(db *gorm.DB) PracticeRepository {
	return &practiceRepository{db: db}
}

// Create 创建练习记录
func (r *practiceRepository) Create(session *model.PracticeSession) error {
	if err := r.db.Omit("Instrument").Create(session).Error; err != nil {
		return wrapDBError(err, "创建练习记录")
	}
	return nil
}

// FindByID 按 ID 查找，带乐器
func (r *practiceRepository) FindByID(id uint) (*model.PracticeSession, error) {
	var session model.PracticeSession
	if err := r.db.Preload("Instrument").First(&session, "session_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询练习记录 id=%d", id)
	}
	return &session, nil
}

// FindActive 查找进行中的练习
func (r *practiceRepository) FindActive(userID uint) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.db.Preload("Instrument").
		Where("user_id = ? AND status = ?", userID, model.PracticeInProgress).
		Order("start_time DESC").
		First(&session).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询进行中练习 user_id=%d", userID)
	}
	return &session, nil
}

// Save 保存练习记录
func (r *practiceRepository) Save(session *model.PracticeSession) error {
	if err := r.db.Omit("Instrument").Save(session).Error; err != nil {
		return wrapDBErrorf(err, "保存练习记录 id=%d", session.ID)
	}
	return nil
}

// Delete 物理删除练习记录及其录音记录
func (r *practiceRepository) Delete(id uint) error {
	if err := r.db.Where("session_id = ?", id).Delete(&model.RecordingFile{}).Error; err != nil {
		return wrapDBErrorf(err, "删除练习录音 session_id=%d", id)
	}
	if err := r.db.Delete(&model.PracticeSession{}, "session_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除练习记录 id=%d", id)
	}
	return nil
}

// List 按练习日期、创建时间倒序分页
func (r *practiceRepository) List(filter PracticeFilter, page, pageSize int) ([]model.PracticeSession, int64, error) {
	var (
		sessions []model.PracticeSession
		total    int64
	)
	q := r.db.Model(&model.PracticeSession{}).Where("user_id = ?", filter.UserID)
	if filter.StartDate != "" {
		q = q.Where("practice_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("practice_date <= ?", filter.EndDate)
	}
	if filter.InstrumentID != 0 {
		q = q.Where("instrument_id = ?", filter.InstrumentID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计练习记录")
	}
	err := q.Preload("Instrument").
		Order("practice_date DESC").
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询练习记录列表")
	}
	return sessions, total, nil
}

// Totals 已完成练习的按用户汇总
func (r *practiceRepository) Totals(userIDs []uint, fromDate string) ([]PracticeTotal, error) {
	var totals []PracticeTotal
	if len(userIDs) == 0 {
		return totals, nil
	}
	q := r.db.Model(&model.PracticeSession{}).
		Select("user_id, COALESCE(SUM(actual_play_time), 0) AS total_seconds, COUNT(*) AS sessions, MAX(practice_date) AS last_date").
		Where("user_id IN ? AND status = ?", userIDs, model.PracticeCompleted)
	if fromDate != "" {
		q = q.Where("practice_date >= ?", fromDate)
	}
	if err := q.Group("user_id").Scan(&totals).Error; err != nil {
		return nil, wrapDBError(err, "汇总练习时间")
	}
	return totals, nil
}

// CompletedDates 有已完成练习的日期
func (r *practiceRepository) CompletedDates(userID uint, fromDate string) ([]string, error) {
	var dates []string
	err := r.db.Model(&model.PracticeSession{}).
		Where("user_id = ? AND status = ? AND practice_date >= ?", userID, model.PracticeCompleted, fromDate).
		Distinct().
		Pluck("practice_date", &dates).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询练习日期 user_id=%d", userID)
	}
	return dates, nil
}

// DailyTotals 区间内每人每天的已完成秒数
func (r *practiceRepository) DailyTotals(userIDs []uint, startDate, endDate string) ([]DailyTotal, error) {
	var rows []DailyTotal
	if len(userIDs) == 0 {
		return rows, nil
	}
	err := r.db.Model(&model.PracticeSession{}).
		Select("user_id, practice_date, COALESCE(SUM(actual_play_time), 0) AS seconds").
		Where("user_id IN ? AND status = ?", userIDs, model.PracticeCompleted).
		Where("practice_date >= ? AND practice_date <= ?", startDate, endDate).
		Group("user_id, practice_date").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "按日汇总练习时间")
	}
	return rows, nil
}
