package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	if err := r.db.Omit("Sender").Create(n).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, "notification_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 id=%d", id)
	}
	return &n, nil
}

// List 按创建时间倒序，带触发者
func (r *notificationRepository) List(userID uint, page, pageSize int) ([]model.Notification, int64, error) {
	var (
		items []model.Notification
		total int64
	)
	q := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计通知数量")
	}
	err := q.Preload("Sender", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Order("notification_id DESC").
		Scopes(paginate(page, pageSize)).
		Find(&items).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询通知列表")
	}
	return items, total, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 user_id=%d", userID)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(id uint) error {
	if err := r.db.Model(&model.Notification{}).Where("notification_id = ?", id).Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记已读 id=%d", id)
	}
	return nil
}

// MarkAllRead 返回本次标记的条数
func (r *notificationRepository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "全部标记已读 user_id=%d", userID)
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) Exists(userID uint, notifType string, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ? AND post_id = ?", userID, notifType, postID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "检查通知是否存在")
	}
	return count > 0, nil
}
