package group

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

// groupInfoService 群组业务逻辑实现
type groupInfoService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewGroupService 构造函数
func NewGroupService(repos *repository.Repositories) *groupInfoService {
	return &groupInfoService{
		repos: repos,
		now:   time.Now,
	}
}

var (
	errGroupNotFound = errorx.New(errorx.CodeNotFound, "群组不存在")
	errGroupNoAccess = errorx.New(errorx.CodeForbidden, "没有访问该群组的权限")
	errGroupFull     = errorx.New(errorx.CodeBadRequest, "群组人数已满")
)

func (g *groupInfoService) findGroup(groupID uint) (*model.Group, error) {
	group, err := g.repos.Group.FindByID(groupID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errGroupNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return group, nil
}

// membership 返回成员关系，不是成员时返回 nil
func (g *groupInfoService) membership(groupID, userID uint) (*model.GroupMember, error) {
	member, err := g.repos.GroupMember.Find(groupID, userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return member, nil
}

// accessible 公开群组或成员可见
func (g *groupInfoService) accessible(groupID, userID uint) (*model.Group, *model.GroupMember, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, nil, err
	}
	member, err := g.membership(groupID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !group.IsPublic && member == nil {
		return nil, nil, errGroupNoAccess
	}
	return group, member, nil
}

func (g *groupInfoService) groupRespond(group *model.Group, member *model.GroupMember, count int64) respond.GroupRespond {
	rsp := respond.GroupRespond{
		GroupID:     group.ID,
		GroupName:   group.GroupName,
		Description: group.Description,
		OwnerID:     group.OwnerID,
		Owner:       respond.NewUserBrief(&group.Owner),
		IsPublic:    group.IsPublic,
		MaxMembers:  group.MaxMembers,
		MemberCount: count,
		IsMember:    member != nil,
		CreatedAt:   group.CreatedAt,
	}
	if member != nil {
		role := member.Role
		rsp.CurrentUserRole = &role
	}
	return rsp
}

func (g *groupInfoService) detail(groupID, userID uint) (*respond.GroupRespond, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	member, err := g.membership(groupID, userID)
	if err != nil {
		return nil, err
	}
	count, err := g.repos.GroupMember.Count(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := g.groupRespond(group, member, count)
	return &rsp, nil
}

// CreateGroup 创建群组，群主自动成为成员
func (g *groupInfoService) CreateGroup(userID uint, req request.CreateGroupRequest) (*respond.GroupRespond, error) {
	taken, err := g.repos.Group.NameTakenByOwner(userID, req.GroupName, 0)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if taken {
		return nil, errorx.New(errorx.CodeBadRequest, "已拥有同名群组")
	}

	maxMembers := constants.DEFAULT_GROUP_MAX_MEMBERS
	if req.MaxMembers != nil {
		maxMembers = *req.MaxMembers
	}
	group := model.Group{
		GroupName:   req.GroupName,
		Description: req.Description,
		OwnerID:     userID,
		IsPublic:    req.IsPublic,
		MaxMembers:  maxMembers,
	}
	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Group.Create(&group); err != nil {
			return err
		}
		return txRepos.GroupMember.Create(&model.GroupMember{
			GroupID:  group.ID,
			UserID:   userID,
			Role:     model.GroupRoleOwner,
			JoinedAt: g.now(),
		})
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("group created", zap.Uint("group_id", group.ID), zap.Uint("owner_id", userID))
	return g.detail(group.ID, userID)
}

// ListGroups 公开群组或我加入的群组
func (g *groupInfoService) ListGroups(userID uint, q request.ListGroupsQuery) (*respond.GroupListRespond, error) {
	page, pageSize := q.Normalize()
	groups, total, err := g.repos.Group.List(repository.GroupFilter{
		UserID:   userID,
		IsPublic: q.IsPublic,
		Search:   q.Search,
	}, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	ids := make([]uint, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.ID)
	}
	counts, err := g.repos.GroupMember.CountByGroups(ids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.GroupListRespond{
		Groups:   make([]respond.GroupRespond, 0, len(groups)),
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}
	for i := range groups {
		member, err := g.membership(groups[i].ID, userID)
		if err != nil {
			return nil, err
		}
		rsp.Groups = append(rsp.Groups, g.groupRespond(&groups[i], member, counts[groups[i].ID]))
	}
	return rsp, nil
}

// GetGroup 群组详情，私有群组只对成员可见
func (g *groupInfoService) GetGroup(userID, groupID uint) (*respond.GroupRespond, error) {
	if _, _, err := g.accessible(groupID, userID); err != nil {
		return nil, err
	}
	return g.detail(groupID, userID)
}

// UpdateGroup 仅群主可修改
func (g *groupInfoService) UpdateGroup(userID, groupID uint, req request.UpdateGroupRequest) (*respond.GroupRespond, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只有群主可以修改群组")
	}

	fields := make(map[string]any)
	if req.GroupName != nil && *req.GroupName != group.GroupName {
		taken, err := g.repos.Group.NameTakenByOwner(userID, *req.GroupName, groupID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if taken {
			return nil, errorx.New(errorx.CodeBadRequest, "已拥有同名群组")
		}
		fields["group_name"] = *req.GroupName
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if req.MaxMembers != nil {
		count, err := g.repos.GroupMember.Count(groupID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if int64(*req.MaxMembers) < count {
			return nil, errorx.Newf(errorx.CodeBadRequest, "人数上限不能小于当前成员数(%d)", count)
		}
		fields["max_members"] = *req.MaxMembers
	}

	if err := g.repos.Group.Updates(groupID, fields); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return g.detail(groupID, userID)
}

// DeleteGroup 仅群主可删除，成员与邀请一并删除
func (g *groupInfoService) DeleteGroup(userID, groupID uint) (*respond.MessageRespond, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只有群主可以删除群组")
	}
	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		return txRepos.Group.Delete(groupID)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("group deleted", zap.Uint("group_id", groupID))
	return &respond.MessageRespond{Message: "群组已删除"}, nil
}

// JoinGroup 加入群组
// 私有群组需要有效邀请，加入后邀请标记为已接受
func (g *groupInfoService) JoinGroup(userID, groupID uint) (*respond.MessageRespond, error) {
	group, err := g.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	member, err := g.membership(groupID, userID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, errorx.New(errorx.CodeBadRequest, "已经是群组成员")
	}

	now := g.now()
	var invitation *model.GroupInvitation
	if !group.IsPublic {
		invitation, err = g.repos.Invitation.FindPending(groupID, userID, now)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeForbidden, "私有群组需要邀请才能加入")
			}
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}

	count, err := g.repos.GroupMember.Count(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if count >= int64(group.MaxMembers) {
		return nil, errGroupFull
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Create(&model.GroupMember{
			GroupID:  groupID,
			UserID:   userID,
			Role:     model.GroupRoleMember,
			JoinedAt: now,
		}); err != nil {
			return err
		}
		if invitation != nil {
			return txRepos.Invitation.UpdateStatus(invitation.ID, model.InvitationAccepted, &now)
		}
		return nil
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "已加入群组"}, nil
}

// LeaveGroup 退出群组，群主不能退出
func (g *groupInfoService) LeaveGroup(userID, groupID uint) (*respond.MessageRespond, error) {
	if _, err := g.findGroup(groupID); err != nil {
		return nil, err
	}
	member, err := g.membership(groupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errorx.New(errorx.CodeNotFound, "未加入该群组")
	}
	if member.Role == model.GroupRoleOwner {
		return nil, errorx.New(errorx.CodeBadRequest, "群主不能退出群组，请删除群组")
	}
	if err := g.repos.GroupMember.Delete(groupID, userID); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "已退出群组"}, nil
}

// ListMembers 群成员，群主、管理员、成员依次排列
func (g *groupInfoService) ListMembers(userID, groupID uint) (*respond.GroupMemberListRespond, error) {
	if _, _, err := g.accessible(groupID, userID); err != nil {
		return nil, err
	}
	members, err := g.repos.GroupMember.ListWithUser(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.GroupMemberListRespond{
		Members: make([]respond.GroupMemberRespond, 0, len(members)),
		Total:   len(members),
	}
	for i := range members {
		rsp.Members = append(rsp.Members, respond.GroupMemberRespond{
			MemberID:         members[i].ID,
			UserBriefRespond: respond.NewUserBrief(&members[i].User),
			Role:             members[i].Role,
			JoinedAt:         members[i].JoinedAt,
		})
	}
	return rsp, nil
}
