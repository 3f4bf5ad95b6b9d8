// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口，处理群成员相关的数据库操作
package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

// groupMemberRepository GroupMemberRepository 接口的实现
type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建 GroupMemberRepository 实例
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// Create 添加群成员
func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Omit("User").Create(member).Error; err != nil {
		return wrapDBError(err, "创建群成员")
	}
	return nil
}

// Find 查找成员关系，用于检查用户是否已在群中
func (r *groupMemberRepository) Find(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group_id=%d user_id=%d", groupID, userID)
	}
	return &member, nil
}

// Count 群成员数
func (r *groupMemberRepository) Count(groupID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计群成员 group_id=%d", groupID)
	}
	return count, nil
}

// CountByGroups 批量统计成员数
func (r *groupMemberRepository) CountByGroups(groupIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		GroupID uint
		Total   int64
	}
	err := r.db.Model(&model.GroupMember{}).
		Select("group_id, COUNT(*) AS total").
		Where("group_id IN ?", groupIDs).
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "批量统计群成员")
	}
	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}
	return counts, nil
}

// ListWithUser 成员列表，带用户信息
func (r *groupMemberRepository) ListWithUser(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.Preload("User").Preload("User.SelectedAchievement").
		Where("group_id = ?", groupID).
		Order("CASE role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END").
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询群成员列表 group_id=%d", groupID)
	}
	return members, nil
}

// UserIDs 群成员用户 ID
func (r *groupMemberRepository) UserIDs(groupID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.GroupMember{}).Where("group_id = ?", groupID).Pluck("user_id", &ids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 ID group_id=%d", groupID)
	}
	return ids, nil
}

// Delete 删除单个群成员
func (r *groupMemberRepository) Delete(groupID, userID uint) error {
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群成员 group_id=%d user_id=%d", groupID, userID)
	}
	return nil
}

// ShareGroup 两个用户是否同在某个群组
func (r *groupMemberRepository) ShareGroup(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Table("group_members a").
		Joins("JOIN group_members b ON a.group_id = b.group_id").
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "检查共同群组")
	}
	return count > 0, nil
}
