package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Min-owo17/Mysic/internal/config"
	dao "github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "mysic",
	Short:         "Mysic 练习记录服务",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "配置文件路径")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultConfigPath 优先使用 MYSIC_CONFIG，其次 configs/config.toml（存在时）
func defaultConfigPath() string {
	if p := os.Getenv("MYSIC_CONFIG"); p != "" {
		return p
	}
	p := filepath.Join("configs", "config.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// bootstrap 加载配置、初始化日志并连接数据库
func bootstrap() (*config.Config, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gin.SetMode(conf.MainConfig.Mode)

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}
	zap.L().Info("日志初始化成功")

	db, err := dao.Open(&conf.MysqlConfig, conf.MainConfig.Mode)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("数据库连接成功", zap.String("driver", conf.MysqlConfig.Driver))
	return conf, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
