package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type supportRepository struct {
	db *gorm.DB
}

// NewSupportRepository 创建客服工单 Repository
func NewSupportRepository(db *gorm.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) Create(s *model.CustomerSupport) error {
	if err := r.db.Omit("User").Create(s).Error; err != nil {
		return wrapDBError(err, "创建工单")
	}
	return nil
}

func (r *supportRepository) FindByID(id uint) (*model.CustomerSupport, error) {
	var s model.CustomerSupport
	err := r.db.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&s, "support_id = ?", id).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询工单 id=%d", id)
	}
	return &s, nil
}

func (r *supportRepository) ListByUser(userID uint, page, pageSize int) ([]model.CustomerSupport, int64, error) {
	return r.list(r.db.Where("user_id = ?", userID), page, pageSize)
}

// List 管理员视图，status 为空表示全部
func (r *supportRepository) List(status string, page, pageSize int) ([]model.CustomerSupport, int64, error) {
	q := r.db
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.list(q, page, pageSize)
}

func (r *supportRepository) list(q *gorm.DB, page, pageSize int) ([]model.CustomerSupport, int64, error) {
	var (
		items []model.CustomerSupport
		total int64
	)
	q = q.Model(&model.CustomerSupport{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计工单数量")
	}
	err := q.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&items).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询工单列表")
	}
	return items, total, nil
}

func (r *supportRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.CustomerSupport{}).Where("support_id = ?", id).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新工单 id=%d", id)
	}
	return nil
}
