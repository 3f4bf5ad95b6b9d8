// Package repository 提供数据访问层的具体实现
package repository

import (
	"errors"

	"github.com/Min-owo17/Mysic/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError 包装数据库错误
//   - ErrRecordNotFound -> CodeNotFound
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 同 wrapDBError，支持格式化消息
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// paginate 分页作用域，page 从 1 开始
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		return db.Offset(offset).Limit(pageSize)
	}
}

// adjustCounter 读改写计数列，结果不小于 0，不加行锁
func adjustCounter(db *gorm.DB, table, idColumn string, id uint, column string, delta int) (int, error) {
	var current int
	if err := db.Table(table).Select(column).Where(idColumn+" = ?", id).Scan(&current).Error; err != nil {
		return 0, wrapDBErrorf(err, "读取计数 %s.%s id=%d", table, column, id)
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if err := db.Table(table).Where(idColumn+" = ?", id).UpdateColumn(column, next).Error; err != nil {
		return 0, wrapDBErrorf(err, "更新计数 %s.%s id=%d", table, column, id)
	}
	return next, nil
}
