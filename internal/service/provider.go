// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/infrastructure/storage"
	"github.com/Min-owo17/Mysic/internal/service/achievement"
	"github.com/Min-owo17/Mysic/internal/service/auth"
	"github.com/Min-owo17/Mysic/internal/service/board"
	"github.com/Min-owo17/Mysic/internal/service/group"
	"github.com/Min-owo17/Mysic/internal/service/notification"
	"github.com/Min-owo17/Mysic/internal/service/practice"
	"github.com/Min-owo17/Mysic/internal/service/reference"
	"github.com/Min-owo17/Mysic/internal/service/support"
	"github.com/Min-owo17/Mysic/internal/service/user"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	Auth         AuthService
	User         UserService
	Reference    ReferenceService
	Practice     PracticeService
	Achievement  AchievementService
	Group        GroupService
	Board        BoardService
	Notification NotificationService
	Support      SupportService
}

// Deps Service 层的外部依赖
// Cache、Storage、Broker 为 nil 时使用空实现
type Deps struct {
	Repos   *repository.Repositories
	Cache   redis.AsyncCacheService
	Tokens  *jwt.Manager
	Storage storage.ObjectStorage
	Broker  notification.Broker
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 成就评估先创建，供练习与用户资料在变更后调用
//  2. 通知服务先创建，供讨论区在事务提交后推送
//  3. 返回 Services 聚合
func NewServices(deps Deps) *Services {
	cache := deps.Cache
	if cache == nil {
		cache = redis.NewNopCache()
	}
	objectStorage := deps.Storage
	if objectStorage == nil {
		objectStorage = storage.DisabledStorage{}
	}

	achievementSvc := achievement.NewAchievementService(deps.Repos, cache)
	notificationSvc := notification.NewNotificationService(deps.Repos, deps.Broker)

	return &Services{
		Auth:         auth.NewAuthService(deps.Repos, deps.Tokens),
		User:         user.NewUserService(deps.Repos, achievementSvc),
		Reference:    reference.NewReferenceService(deps.Repos, cache),
		Practice:     practice.NewPracticeService(deps.Repos, objectStorage, achievementSvc),
		Achievement:  achievementSvc,
		Group:        group.NewGroupService(deps.Repos),
		Board:        board.NewBoardService(deps.Repos, notificationSvc),
		Notification: notificationSvc,
		Support:      support.NewSupportService(deps.Repos),
	}
}
