package group

import (
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

var validInvitationStatus = map[string]bool{
	model.InvitationPending:  true,
	model.InvitationAccepted: true,
	model.InvitationDeclined: true,
	model.InvitationExpired:  true,
}

func invitationRespond(inv *model.GroupInvitation) respond.InvitationRespond {
	return respond.InvitationRespond{
		InvitationID: inv.ID,
		GroupID:      inv.GroupID,
		Group: respond.InvitationGroupRespond{
			GroupID:     inv.Group.ID,
			GroupName:   inv.Group.GroupName,
			Description: inv.Group.Description,
			IsPublic:    inv.Group.IsPublic,
		},
		InviterID:   inv.InviterID,
		Inviter:     respond.NewUserBrief(&inv.Inviter),
		InviteeID:   inv.InviteeID,
		Invitee:     respond.NewUserBrief(&inv.Invitee),
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		RespondedAt: inv.RespondedAt,
		ExpiresAt:   inv.ExpiresAt,
	}
}

// Invite 群主或管理员邀请用户，有效期 7 天
func (g *groupInfoService) Invite(userID, groupID uint, req request.InviteRequest) (*respond.InvitationRespond, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	inviter, err := g.membership(groupID, userID)
	if err != nil {
		return nil, err
	}
	if inviter == nil || (inviter.Role != model.GroupRoleOwner && inviter.Role != model.GroupRoleAdmin) {
		return nil, errorx.New(errorx.CodeForbidden, "只有群主或管理员可以邀请")
	}

	invitee, err := g.repos.User.FindByID(req.InviteeID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "被邀请的用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !invitee.IsActive {
		return nil, errorx.New(errorx.CodeBadRequest, "不能邀请已停用的用户")
	}
	if invitee.ID == userID {
		return nil, errorx.New(errorx.CodeBadRequest, "不能邀请自己")
	}
	existing, err := g.membership(groupID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errorx.New(errorx.CodeBadRequest, "该用户已是群组成员")
	}
	count, err := g.repos.GroupMember.Count(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if count >= int64(group.MaxMembers) {
		return nil, errGroupFull
	}

	now := g.now()
	if _, err := g.repos.Invitation.FindPending(groupID, invitee.ID, now); err == nil {
		return nil, errorx.New(errorx.CodeBadRequest, "已发送过邀请")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	inv := &model.GroupInvitation{
		GroupID:   groupID,
		InviterID: userID,
		InviteeID: invitee.ID,
		Status:    model.InvitationPending,
		ExpiresAt: now.Add(constants.INVITATION_TTL),
	}
	if err := g.repos.Invitation.Create(inv); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("group invitation sent",
		zap.Uint("group_id", groupID),
		zap.Uint("inviter_id", userID),
		zap.Uint("invitee_id", invitee.ID),
	)

	saved, err := g.repos.Invitation.FindByID(inv.ID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := invitationRespond(saved)
	return &rsp, nil
}

// ListInvitations 我收到的邀请
func (g *groupInfoService) ListInvitations(userID uint, q request.ListInvitationsQuery) (*respond.InvitationListRespond, error) {
	if q.Status != "" && !validInvitationStatus[q.Status] {
		return nil, errorx.New(errorx.CodeBadRequest, "无效的邀请状态")
	}
	invs, err := g.repos.Invitation.ListByInvitee(userID, q.Status)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.InvitationListRespond{
		Invitations: make([]respond.InvitationRespond, 0, len(invs)),
		Total:       len(invs),
	}
	for i := range invs {
		rsp.Invitations = append(rsp.Invitations, invitationRespond(&invs[i]))
	}
	return rsp, nil
}

// pendingInvitation 校验邀请可被当前用户处理，过期的邀请在这里标记为 expired
func (g *groupInfoService) pendingInvitation(userID, invitationID uint) (*model.GroupInvitation, error) {
	inv, err := g.repos.Invitation.FindByID(invitationID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "邀请不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if inv.InviteeID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只有被邀请人可以处理邀请")
	}
	if inv.Status != model.InvitationPending {
		return nil, errorx.Newf(errorx.CodeBadRequest, "邀请已处理（当前状态: %s）", inv.Status)
	}
	now := g.now()
	if inv.Expired(now) {
		if err := g.repos.Invitation.UpdateStatus(inv.ID, model.InvitationExpired, nil); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return nil, errorx.New(errorx.CodeBadRequest, "邀请已过期")
	}
	return inv, nil
}

// AcceptInvitation 接受邀请并加入群组
// 已是成员时只更新邀请状态
func (g *groupInfoService) AcceptInvitation(userID, invitationID uint) (*respond.MessageRespond, error) {
	inv, err := g.pendingInvitation(userID, invitationID)
	if err != nil {
		return nil, err
	}
	now := g.now()

	member, err := g.membership(inv.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		if err := g.repos.Invitation.UpdateStatus(inv.ID, model.InvitationAccepted, &now); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		return &respond.MessageRespond{Message: "已经是群组成员"}, nil
	}

	count, err := g.repos.GroupMember.Count(inv.GroupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if count >= int64(inv.Group.MaxMembers) {
		return nil, errGroupFull
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Create(&model.GroupMember{
			GroupID:  inv.GroupID,
			UserID:   userID,
			Role:     model.GroupRoleMember,
			JoinedAt: now,
		}); err != nil {
			return err
		}
		return txRepos.Invitation.UpdateStatus(inv.ID, model.InvitationAccepted, &now)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("group invitation accepted", zap.Uint("invitation_id", inv.ID), zap.Uint("group_id", inv.GroupID))
	return &respond.MessageRespond{Message: "已加入群组"}, nil
}

// DeclineInvitation 拒绝邀请
func (g *groupInfoService) DeclineInvitation(userID, invitationID uint) (*respond.MessageRespond, error) {
	inv, err := g.pendingInvitation(userID, invitationID)
	if err != nil {
		return nil, err
	}
	now := g.now()
	if err := g.repos.Invitation.UpdateStatus(inv.ID, model.InvitationDeclined, &now); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "已拒绝邀请"}, nil
}
