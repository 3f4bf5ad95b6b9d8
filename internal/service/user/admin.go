package user

import (
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

// ListUsers 管理员用户列表
func (u *userInfoService) ListUsers(q request.AdminUserListQuery) (*respond.UserListRespond, error) {
	page, pageSize := q.Normalize()
	users, total, err := u.repos.User.List(repository.UserFilter{Search: q.Search, IsActive: q.IsActive}, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.UserListRespond{
		Users:    make([]respond.UserDetailRespond, 0, len(users)),
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}
	for i := range users {
		rsp.Users = append(rsp.Users, respond.NewUserDetail(&users[i]))
	}
	return rsp, nil
}

// AdminUpdateUser 管理员修改用户
// 不能取消自己的管理员权限，也不能停用自己
func (u *userInfoService) AdminUpdateUser(adminID, userID uint, req request.AdminUpdateUserRequest) (*respond.UserDetailRespond, error) {
	if _, err := u.findUser(userID); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.Email != nil {
		taken, err := u.repos.User.EmailTaken(*req.Email, userID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if taken {
			return nil, errorx.New(errorx.CodeBadRequest, "邮箱已被使用")
		}
		fields["email"] = *req.Email
	}
	if req.Nickname != nil {
		taken, err := u.repos.User.NicknameTaken(*req.Nickname, userID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if taken {
			return nil, errorx.New(errorx.CodeBadRequest, "昵称已被使用")
		}
		fields["nickname"] = *req.Nickname
	}
	if req.IsAdmin != nil {
		if adminID == userID && !*req.IsAdmin {
			return nil, errorx.New(errorx.CodeBadRequest, "不能取消自己的管理员权限")
		}
		fields["is_admin"] = *req.IsAdmin
	}
	if req.IsActive != nil {
		if adminID == userID && !*req.IsActive {
			return nil, errorx.New(errorx.CodeBadRequest, "不能停用自己的账号")
		}
		fields["is_active"] = *req.IsActive
	}
	if req.MembershipTier != nil {
		fields["membership_tier"] = *req.MembershipTier
	}

	if err := u.repos.User.Updates(userID, fields); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("admin updated user", zap.Uint("admin_id", adminID), zap.Uint("user_id", userID))
	return u.GetMe(userID)
}

// AdminSetStatus 启用或停用用户，不能修改自己
func (u *userInfoService) AdminSetStatus(adminID, userID uint, req request.AdminUserStatusRequest) (*respond.UserDetailRespond, error) {
	if _, err := u.findUser(userID); err != nil {
		return nil, err
	}
	if adminID == userID {
		return nil, errorx.New(errorx.CodeBadRequest, "不能修改自己的账号状态")
	}
	if err := u.repos.User.Updates(userID, map[string]any{"is_active": *req.IsActive}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("admin set user status",
		zap.Uint("admin_id", adminID),
		zap.Uint("user_id", userID),
		zap.Bool("is_active", *req.IsActive),
	)
	return u.GetMe(userID)
}
