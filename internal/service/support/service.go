// Package support 客服工单：用户提交咨询或建议，管理员回复
package support

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

type supportService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewSupportService 构造函数
func NewSupportService(repos *repository.Repositories) *supportService {
	return &supportService{repos: repos, now: time.Now}
}

func supportRespond(s *model.CustomerSupport, withUser bool) respond.SupportRespond {
	rsp := respond.SupportRespond{
		SupportID:     s.ID,
		UserID:        s.UserID,
		Type:          s.Type,
		Title:         s.Title,
		Content:       s.Content,
		Status:        s.Status,
		AnswerContent: s.AnswerContent,
		AnsweredAt:    s.AnsweredAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if withUser && s.User.ID != 0 {
		brief := respond.NewUserBrief(&s.User)
		rsp.User = &brief
	}
	return rsp
}

func listRespond(items []model.CustomerSupport, total int64, page, pageSize int, withUser bool) *respond.SupportListRespond {
	rsp := &respond.SupportListRespond{
		Supports: make([]respond.SupportRespond, 0, len(items)),
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}
	for i := range items {
		rsp.Supports = append(rsp.Supports, supportRespond(&items[i], withUser))
	}
	return rsp
}

// Create 提交工单，初始状态 pending
func (s *supportService) Create(userID uint, req request.CreateSupportRequest) (*respond.SupportRespond, error) {
	item := &model.CustomerSupport{
		UserID:  userID,
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Status:  model.SupportPending,
	}
	if err := s.repos.Support.Create(item); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("support ticket created", zap.Uint("support_id", item.ID), zap.String("type", item.Type))
	rsp := supportRespond(item, false)
	return &rsp, nil
}

// My 我的工单
func (s *supportService) My(userID uint, q request.PageQuery) (*respond.SupportListRespond, error) {
	page, pageSize := q.Normalize()
	items, total, err := s.repos.Support.ListByUser(userID, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return listRespond(items, total, page, pageSize, false), nil
}

// AdminList 全部工单，可按状态过滤
func (s *supportService) AdminList(q request.AdminSupportQuery) (*respond.SupportListRespond, error) {
	page, pageSize := q.Normalize()
	items, total, err := s.repos.Support.List(q.Status, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return listRespond(items, total, page, pageSize, true), nil
}

// Answer 管理员回复，重复回复覆盖上一次的内容
func (s *supportService) Answer(adminID, supportID uint, req request.AnswerSupportRequest) (*respond.SupportRespond, error) {
	if _, err := s.repos.Support.FindByID(supportID); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "工单不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if err := s.repos.Support.Updates(supportID, map[string]any{
		"answer_content": req.AnswerContent,
		"answered_at":    s.now(),
		"status":         model.SupportAnswered,
	}); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("support ticket answered", zap.Uint("support_id", supportID), zap.Uint("admin_id", adminID))

	item, err := s.repos.Support.FindByID(supportID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := supportRespond(item, true)
	return &rsp, nil
}
