package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// notificationService 通知业务实现
type notificationService struct {
	repos  *repository.Repositories
	broker Broker
}

// NewNotificationService broker 为 nil 时只写库不推送
func NewNotificationService(repos *repository.Repositories, broker Broker) *notificationService {
	return &notificationService{repos: repos, broker: broker}
}

// List 我的通知，带未读数
func (s *notificationService) List(userID uint, q request.PageQuery) (*respond.NotificationListRespond, error) {
	page, pageSize := q.Normalize()
	items, total, err := s.repos.Notification.List(userID, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	unread, err := s.repos.Notification.CountUnread(userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.NotificationListRespond{
		Notifications: make([]respond.NotificationRespond, 0, len(items)),
		UnreadCount:   unread,
		PageInfo:      respond.NewPageInfo(total, page, pageSize),
	}
	for i := range items {
		rsp.Notifications = append(rsp.Notifications, respond.NewNotificationRespond(&items[i]))
	}
	return rsp, nil
}

// MarkRead 只有接收者可以标记，其他人视为不存在
func (s *notificationService) MarkRead(userID, notificationID uint) (*respond.NotificationRespond, error) {
	n, err := s.repos.Notification.FindByID(notificationID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "通知不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if n.UserID != userID {
		return nil, errorx.New(errorx.CodeNotFound, "通知不存在")
	}
	if !n.IsRead {
		if err := s.repos.Notification.MarkRead(n.ID); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		n.IsRead = true
	}
	rsp := respond.NewNotificationRespond(n)
	return &rsp, nil
}

// MarkAllRead 全部标记已读
func (s *notificationService) MarkAllRead(userID uint) (*respond.ReadAllRespond, error) {
	updated, err := s.repos.Notification.MarkAllRead(userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.ReadAllRespond{Updated: updated}, nil
}

// Push 事务提交后推送，失败只记录日志
func (s *notificationService) Push(items ...model.Notification) {
	if s.broker == nil || len(items) == 0 {
		return
	}

	senderIDs := make([]uint, 0, len(items))
	for _, n := range items {
		if n.SenderID != nil && n.Sender == nil {
			senderIDs = append(senderIDs, *n.SenderID)
		}
	}
	senders := make(map[uint]*model.User, len(senderIDs))
	if len(senderIDs) > 0 {
		users, err := s.repos.User.FindByIDs(senderIDs)
		if err != nil {
			zap.L().Error(err.Error())
		}
		for i := range users {
			senders[users[i].ID] = &users[i]
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for i := range items {
		n := items[i]
		if n.Sender == nil && n.SenderID != nil {
			n.Sender = senders[*n.SenderID]
		}
		payload, err := json.Marshal(respond.NewNotificationRespond(&n))
		if err != nil {
			zap.L().Error("marshal notification", zap.Error(err))
			continue
		}
		if err := s.broker.Publish(ctx, n.UserID, payload); err != nil {
			zap.L().Warn("publish notification", zap.Uint("notification_id", n.ID), zap.Error(err))
		}
	}
}
