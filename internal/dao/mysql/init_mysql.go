// Package mysql 负责建立数据库连接、自动迁移表结构和写入初始数据
package mysql

import (
	"fmt"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"
	"github.com/Min-owo17/Mysic/internal/model"

	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 根据配置建立连接
// driver 为 sqlite 时打开本地文件，便于本地开发
func Open(conf *config.MysqlConfig, mode string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case "sqlite":
		dialector = sqlite.Open(conf.SqlitePath)
	default:
		dialector = mysqldriver.Open(conf.DSN())
	}

	db, err := gorm.Open(dialector, gormConfig(mode))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if conf.Driver == "sqlite" {
		// sqlite 单写者
		sqlDB.SetMaxOpenConns(1)
	} else {
		if conf.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
		}
		if conf.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

// OpenMemory 打开命名的 sqlite 内存库，同名连接共享数据
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig("test"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig(mode string) *gorm.Config {
	level := logger.Warn
	if mode != "debug" {
		level = logger.Silent
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// 删除顺序由业务层控制
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// AutoMigrate 创建或更新全部表结构，不会删除已有字段或数据
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Instrument{},
		&model.UserType{},
		&model.UserProfileInstrument{},
		&model.UserProfileUserType{},
		&model.PracticeSession{},
		&model.RecordingFile{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupInvitation{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.PostBookmark{},
		&model.PostReport{},
		&model.Notification{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.CustomerSupport{},
	)
}

// Ping 数据库健康检查
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
