package user

import (
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

const defaultSearchLimit = 20

// achievementEvaluator 乐器变化后检查成就
type achievementEvaluator interface {
	Evaluate(userID uint) []model.Achievement
}

// userInfoService 用户业务逻辑实现
type userInfoService struct {
	repos     *repository.Repositories
	evaluator achievementEvaluator
}

// NewUserService 构造函数，evaluator 可为 nil
func NewUserService(repos *repository.Repositories, evaluator achievementEvaluator) *userInfoService {
	return &userInfoService{repos: repos, evaluator: evaluator}
}

// GetMe 当前用户详情，带资料
func (u *userInfoService) GetMe(userID uint) (*respond.UserDetailRespond, error) {
	user, err := u.repos.User.FindDetail(userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := respond.NewUserDetail(user)
	return &rsp, nil
}

// UpdateProfile 修改昵称、头像、简介和标签
func (u *userInfoService) UpdateProfile(userID uint, req request.UpdateProfileRequest) (*respond.UserDetailRespond, error) {
	userFields := make(map[string]any)
	if req.Nickname != nil {
		taken, err := u.repos.User.NicknameTaken(*req.Nickname, userID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if taken {
			return nil, errorx.New(errorx.CodeBadRequest, "昵称已被使用")
		}
		userFields["nickname"] = *req.Nickname
	}
	if req.ProfileImageURL != nil {
		userFields["profile_image_url"] = *req.ProfileImageURL
	}

	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.User.Updates(userID, userFields); err != nil {
			return err
		}
		if req.Bio == nil && req.Hashtags == nil {
			return nil
		}
		profile, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}
		profileFields := make(map[string]any)
		if req.Bio != nil {
			profileFields["bio"] = *req.Bio
		}
		if req.Hashtags != nil {
			profile.Hashtags = req.Hashtags
			profileFields["hashtags"] = profile.Hashtags
		}
		return tx.Profile.Updates(profile.ID, profileFields)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return u.GetMe(userID)
}

// ensureProfile 资料不存在时创建
func ensureProfile(repos *repository.Repositories, userID uint) (*model.UserProfile, error) {
	profile, err := repos.Profile.FindByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errorx.IsNotFound(err) {
		return nil, err
	}
	profile = &model.UserProfile{UserID: userID}
	if err := repos.Profile.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UpdateInstruments 整体替换乐器列表，主乐器必须在列表中
func (u *userInfoService) UpdateInstruments(userID uint, req request.UpdateInstrumentsRequest) (*respond.MessageRespond, error) {
	ids := uniqueIDs(req.InstrumentIDs)
	if len(ids) > 0 {
		found, err := u.repos.Reference.FindInstrumentsByIDs(ids)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if len(found) != len(ids) {
			return nil, errorx.New(errorx.CodeBadRequest, "包含不存在的乐器")
		}
	}
	var primary uint
	if req.PrimaryInstrumentID != nil && *req.PrimaryInstrumentID != 0 {
		primary = *req.PrimaryInstrumentID
		contains := false
		for _, id := range ids {
			if id == primary {
				contains = true
				break
			}
		}
		if !contains {
			return nil, errorx.New(errorx.CodeBadRequest, "主乐器必须在已选乐器中")
		}
	}

	items := make([]model.UserProfileInstrument, 0, len(ids))
	for _, id := range ids {
		items = append(items, model.UserProfileInstrument{InstrumentID: id, IsPrimary: id == primary})
	}
	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		profile, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}
		return tx.Profile.ReplaceInstruments(profile.ID, items)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	if u.evaluator != nil {
		u.evaluator.Evaluate(userID)
	}
	return &respond.MessageRespond{Message: "乐器信息已更新"}, nil
}

// UpdateUserTypes 整体替换用户类型
func (u *userInfoService) UpdateUserTypes(userID uint, req request.UpdateUserTypesRequest) (*respond.MessageRespond, error) {
	ids := uniqueIDs(req.UserTypeIDs)
	if len(ids) > 0 {
		found, err := u.repos.Reference.FindUserTypesByIDs(ids)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if len(found) != len(ids) {
			return nil, errorx.New(errorx.CodeBadRequest, "包含不存在的用户类型")
		}
	}

	items := make([]model.UserProfileUserType, 0, len(ids))
	for _, id := range ids {
		items = append(items, model.UserProfileUserType{UserTypeID: id})
	}
	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		profile, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}
		return tx.Profile.ReplaceUserTypes(profile.ID, items)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "用户类型已更新"}, nil
}

func (u *userInfoService) findUser(userID uint) (*model.User, error) {
	user, err := u.repos.User.FindByID(userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return user, nil
}

// ChangePassword 修改密码，社交账号不可修改
func (u *userInfoService) ChangePassword(userID uint, req request.ChangePasswordRequest) (*respond.MessageRespond, error) {
	user, err := u.findUser(userID)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, errorx.New(errorx.CodeBadRequest, "社交账号不能修改密码")
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return nil, errorx.New(errorx.CodeBadRequest, "当前密码不正确")
	}
	user.RawPassword = req.NewPassword
	if err := u.repos.User.Save(user); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MessageRespond{Message: "密码已修改"}, nil
}

// ChangeEmail 修改邮箱
func (u *userInfoService) ChangeEmail(userID uint, req request.ChangeEmailRequest) (*respond.UserRespond, error) {
	user, err := u.findUser(userID)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, errorx.New(errorx.CodeBadRequest, "社交账号不能修改邮箱")
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return nil, errorx.New(errorx.CodeBadRequest, "当前密码不正确")
	}
	if req.NewEmail == user.Email {
		return nil, errorx.New(errorx.CodeBadRequest, "新邮箱与当前邮箱相同")
	}
	taken, err := u.repos.User.EmailTaken(req.NewEmail, userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if taken {
		return nil, errorx.New(errorx.CodeBadRequest, "邮箱已被使用")
	}
	if err := u.repos.User.Updates(userID, map[string]any{"email": req.NewEmail}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	user.Email = req.NewEmail
	rsp := respond.NewUserRespond(user)
	return &rsp, nil
}

// DeleteMe 注销账号，停用并软删除
func (u *userInfoService) DeleteMe(userID uint) (*respond.MessageRespond, error) {
	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		return tx.User.SoftDelete(userID)
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("user deleted", zap.Uint("user_id", userID))
	return &respond.MessageRespond{Message: "账号已注销"}, nil
}

// Search 按昵称或唯一码搜索其他活跃用户
func (u *userInfoService) Search(userID uint, q request.SearchUsersQuery) (*respond.UserSearchRespond, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	users, err := u.repos.User.Search(q.Query, userID, limit)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.UserSearchRespond{
		Users: make([]respond.UserBriefRespond, 0, len(users)),
		Total: len(users),
	}
	for i := range users {
		rsp.Users = append(rsp.Users, respond.NewUserBrief(&users[i]))
	}
	return rsp, nil
}
