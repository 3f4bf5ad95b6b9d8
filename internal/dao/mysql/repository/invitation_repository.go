package repository

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository 创建群邀请 Repository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(inv *model.GroupInvitation) error {
	if err := r.db.Omit("Group", "Inviter", "Invitee").Create(inv).Error; err != nil {
		return wrapDBError(err, "创建群邀请")
	}
	return nil
}

// FindByID 带群组、邀请人、被邀请人
func (r *invitationRepository) FindByID(id uint) (*model.GroupInvitation, error) {
	var inv model.GroupInvitation
	err := r.db.Preload("Group").Preload("Inviter").Preload("Invitee").
		First(&inv, "invitation_id = ?", id).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询群邀请 id=%d", id)
	}
	return &inv, nil
}

// FindPending 未过期的待处理邀请
func (r *invitationRepository) FindPending(groupID, inviteeID uint, now time.Time) (*model.GroupInvitation, error) {
	var inv model.GroupInvitation
	err := r.db.
		Where("group_id = ? AND invitee_id = ? AND status = ?", groupID, inviteeID, model.InvitationPending).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		First(&inv).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询待处理邀请 group_id=%d invitee_id=%d", groupID, inviteeID)
	}
	return &inv, nil
}

// ListByInvitee 收到的邀请，status 为空表示全部
func (r *invitationRepository) ListByInvitee(inviteeID uint, status string) ([]model.GroupInvitation, error) {
	var invs []model.GroupInvitation
	q := r.db.Preload("Group").Preload("Inviter").Preload("Invitee").Where("invitee_id = ?", inviteeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&invs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询收到的邀请 invitee_id=%d", inviteeID)
	}
	return invs, nil
}

func (r *invitationRepository) UpdateStatus(id uint, status string, respondedAt *time.Time) error {
	err := r.db.Model(&model.GroupInvitation{}).
		Where("invitation_id = ?", id).
		Updates(map[string]any{"status": status, "responded_at": respondedAt}).Error
	if err != nil {
		return wrapDBErrorf(err, "更新邀请状态 id=%d", id)
	}
	return nil
}
