package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	myredis "github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/gateway/websocket"
	"github.com/Min-owo17/Mysic/internal/handler"
	"github.com/Min-owo17/Mysic/internal/https_server"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/infrastructure/mq"
	"github.com/Min-owo17/Mysic/internal/infrastructure/storage"
	"github.com/Min-owo17/Mysic/internal/service"
	"github.com/Min-owo17/Mysic/internal/service/notification"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "启动前同步表结构并写入初始数据")
	rootCmd.AddCommand(serveCmd)
}

func newBroker(conf *config.Config, hub *websocket.Hub) notification.Broker {
	if conf.KafkaConfig.MessageMode == "kafka" {
		return notification.NewKafkaBroker(mq.NewKafkaClient(&conf.KafkaConfig), hub)
	}
	return notification.NewChannelBroker(hub)
}

func serve() error {
	// 1. 配置、日志、数据库
	conf, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)
	defer func() { _ = zap.L().Sync() }()

	if autoMigrate {
		if err := migrateAndSeed(db); err != nil {
			return err
		}
	}

	// 2. 缓存（未启用时为空实现）
	cache, err := myredis.Init(&conf.RedisConfig)
	if err != nil {
		return err
	}
	defer cache.Close()
	zap.L().Info("缓存初始化成功", zap.Bool("redis", conf.RedisConfig.Enabled))

	// 3. JWT
	tokens, err := jwt.NewManager(conf.JWTConfig.Secret, conf.JWTConfig.Algorithm, conf.TokenExpiry())
	if err != nil {
		return err
	}

	// 4. 录音对象存储
	objectStorage, err := storage.New(&conf.StorageConfig)
	if err != nil {
		return err
	}

	// 5. WebSocket 与通知推送
	hub := websocket.NewHub()
	defer hub.Close()
	broker := newBroker(conf, hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broker.Start(ctx)
	defer broker.Close()
	zap.L().Info("通知推送初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 6. Service / Handler 依赖注入
	repos := repository.NewRepositories(db)
	svc := service.NewServices(service.Deps{
		Repos:   repos,
		Cache:   cache,
		Tokens:  tokens,
		Storage: objectStorage,
		Broker:  broker,
	})
	if autoMigrate {
		if err := svc.Reference.Refresh(ctx); err != nil {
			zap.L().Warn("参考数据缓存未能清除", zap.Error(err))
		}
	}
	if err := handler.InitTrans(conf.MainConfig.Locale); err != nil {
		return err
	}
	health := handler.NewHealthHandler(conf.MainConfig.AppName, db, cache, conf.RedisConfig.Enabled)
	handlers := handler.NewHandlers(svc, hub, health)
	auth := middleware.NewAuthenticator(tokens, svc.Auth)

	engine := https_server.Init(conf, handlers, auth)
	srv := &http.Server{
		Addr:    conf.Addr(),
		Handler: engine,
	}

	go func() {
		zap.L().Info("服务启动", zap.String("addr", conf.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
	return nil
}
