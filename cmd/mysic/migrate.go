package main

import (
	dao "github.com/Min-owo17/Mysic/internal/dao/mysql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "同步数据库表结构",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := dao.AutoMigrate(db); err != nil {
			return err
		}
		zap.L().Info("数据库迁移完成")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入乐器、用户类型和默认成就",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := migrateAndSeed(db); err != nil {
			return err
		}
		zap.L().Info("初始数据写入完成")
		return nil
	},
}

func migrateAndSeed(db *gorm.DB) error {
	if err := dao.AutoMigrate(db); err != nil {
		return err
	}
	return dao.Seed(db)
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
