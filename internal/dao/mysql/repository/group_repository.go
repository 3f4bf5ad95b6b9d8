// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理群组相关的数据库操作
package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

// groupRepository GroupRepository 接口的实现
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create 创建群组
func (r *groupRepository) Create(group *model.Group) error {
	if err := r.db.Omit("Owner").Create(group).Error; err != nil {
		return wrapDBError(err, "创建群组")
	}
	return nil
}

// FindByID 根据 ID 查找群组，带群主
func (r *groupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.Preload("Owner").Preload("Owner.SelectedAchievement").First(&group, "group_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 id=%d", id)
	}
	return &group, nil
}

// NameTakenByOwner 同一群主下群名是否重复
func (r *groupRepository) NameTakenByOwner(ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Group{}).Where("owner_id = ? AND group_name = ?", ownerID, name)
	if excludeID != 0 {
		q = q.Where("group_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, wrapDBError(err, "检查群名")
	}
	return count > 0, nil
}

// List 公开群组或用户所在群组，按创建时间倒序
func (r *groupRepository) List(filter GroupFilter, page, pageSize int) ([]model.Group, int64, error) {
	var (
		groups []model.Group
		total  int64
	)
	memberOf := r.db.Model(&model.GroupMember{}).Select("group_id").Where("user_id = ?", filter.UserID)
	q := r.db.Model(&model.Group{}).Where("is_public = ? OR group_id IN (?)", true, memberOf)
	if filter.IsPublic != nil {
		q = q.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("group_name LIKE ? OR description LIKE ?", like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计群组数量")
	}
	err := q.Preload("Owner").Preload("Owner.SelectedAchievement").
		Order("created_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&groups).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "查询群组列表")
	}
	return groups, total, nil
}

// Updates 更新群组字段
func (r *groupRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Group{}).Where("group_id = ?", id).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新群组 id=%d", id)
	}
	return nil
}

// Delete 硬删除群组，先删成员和邀请
func (r *groupRepository) Delete(id uint) error {
	if err := r.db.Where("group_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群成员 group_id=%d", id)
	}
	if err := r.db.Where("group_id = ?", id).Delete(&model.GroupInvitation{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群邀请 group_id=%d", id)
	}
	if err := r.db.Delete(&model.Group{}, "group_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除群组 id=%d", id)
	}
	return nil
}
