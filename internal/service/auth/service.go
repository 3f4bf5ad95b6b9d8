// Package auth 提供注册、登录与当前用户加载
package auth

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"
	"github.com/Min-owo17/Mysic/pkg/util/random"

	"go.uber.org/zap"
)

const tokenType = "bearer"

// Service 认证服务实现
type Service struct {
	repos  *repository.Repositories
	tokens *jwt.Manager
	now    func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(repos *repository.Repositories, tokens *jwt.Manager) *Service {
	return &Service{
		repos:  repos,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register 注册并创建空资料
// 邮箱、昵称只与未删除用户比较
func (s *Service) Register(req request.RegisterRequest) (*respond.AuthRespond, error) {
	taken, err := s.repos.User.EmailTaken(req.Email, 0)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if taken {
		return nil, errorx.New(errorx.CodeUserExist, "邮箱已被注册")
	}
	taken, err = s.repos.User.NicknameTaken(req.Nickname, 0)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if taken {
		return nil, errorx.New(errorx.CodeUserExist, "昵称已被使用")
	}

	user := &model.User{
		Email:          req.Email,
		Nickname:       req.Nickname,
		UniqueCode:     random.GetRandomString(constants.UNIQUE_CODE_LENGTH),
		IsActive:       true,
		MembershipTier: model.MembershipFree,
		RawPassword:    req.Password,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.User.Create(user); err != nil {
			return err
		}
		return tx.Profile.Create(&model.UserProfile{UserID: user.ID})
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("user registered", zap.Uint("user_id", user.ID))
	return s.issue(user)
}

// Login 邮箱密码登录，更新 last_login_at
func (s *Service) Login(req request.LoginRequest) (*respond.AuthRespond, error) {
	user, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "邮箱或密码错误")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "邮箱或密码错误")
	}
	if !user.IsActive {
		return nil, errorx.New(errorx.CodeBadRequest, "账号已停用")
	}

	now := s.now()
	if err := s.repos.User.Updates(user.ID, map[string]any{"last_login_at": now}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	user.LastLoginAt = &now
	return s.issue(user)
}

func (s *Service) issue(user *model.User) (*respond.AuthRespond, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		zap.L().Error("generate token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.AuthRespond{
		AccessToken: token,
		TokenType:   tokenType,
		User:        respond.NewUserRespond(user),
	}, nil
}

// LoadActiveUser 鉴权中间件使用，已删除或停用的用户视为未登录
func (s *Service) LoadActiveUser(userID uint) (*model.User, error) {
	user, err := s.repos.User.FindByID(userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.IsActive {
		return nil, errorx.New(errorx.CodeUnauthorized, "账号已停用")
	}
	return user, nil
}

// Me 当前登录用户
func (s *Service) Me(user *model.User) *respond.UserRespond {
	rsp := respond.NewUserRespond(user)
	return &rsp
}
