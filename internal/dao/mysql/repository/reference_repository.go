package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository 创建参考数据 Repository
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListInstruments() ([]model.Instrument, error) {
	var items []model.Instrument
	if err := r.db.Order("display_order ASC, instrument_id ASC").Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "查询乐器列表")
	}
	return items, nil
}

func (r *referenceRepository) ListUserTypes() ([]model.UserType, error) {
	var items []model.UserType
	if err := r.db.Order("display_order ASC, user_type_id ASC").Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "查询用户类型列表")
	}
	return items, nil
}

func (r *referenceRepository) FindInstrumentsByIDs(ids []uint) ([]model.Instrument, error) {
	var items []model.Instrument
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("instrument_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "批量查询乐器")
	}
	return items, nil
}

func (r *referenceRepository) FindUserTypesByIDs(ids []uint) ([]model.UserType, error) {
	var items []model.UserType
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("user_type_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户类型")
	}
	return items, nil
}
