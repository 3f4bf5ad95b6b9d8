package model

import "time"

// Instrument 乐器参考数据
type Instrument struct {
	ID           uint      `gorm:"column:instrument_id;primaryKey" json:"instrument_id"`
	Name         string    `gorm:"column:name;type:varchar(50);uniqueIndex;not null;comment:乐器名" json:"name"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0;comment:排序" json:"display_order"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Instrument) TableName() string {
	return "instruments"
}

// UserType 用户类型参考数据
type UserType struct {
	ID           uint      `gorm:"column:user_type_id;primaryKey" json:"user_type_id"`
	Name         string    `gorm:"column:name;type:varchar(50);uniqueIndex;not null;comment:类型名" json:"name"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0;comment:排序" json:"display_order"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UserType) TableName() string {
	return "user_types"
}
