package mysql

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultInstruments = []string{
	"피아노", "기타", "바이올린", "첼로", "플루트", "클라리넷",
	"트럼펫", "드럼", "베이스", "색소폰", "오보에", "바순",
}

var defaultUserTypes = []string{
	"진학", "취미", "클래식", "재즈", "밴드", "오케스트라", "실용음악", "국악",
}

type achievementSeed struct {
	title         string
	description   string
	conditionType string
	value         int64
}

var defaultAchievements = []achievementSeed{
	{"연습의 시작", "총 1시간 연습", model.ConditionPracticeTime, 3600},
	{"꾸준한 연습생", "총 10시간 연습", model.ConditionPracticeTime, 36000},
	{"연습 마니아", "총 100시간 연습", model.ConditionPracticeTime, 360000},
	{"연습의 달인", "총 1000시간 연습", model.ConditionPracticeTime, 3600000},
	{"첫 걸음", "1일 연속 연습", model.ConditionConsecutiveDays, 1},
	{"일주일 개근", "7일 연속 연습", model.ConditionConsecutiveDays, 7},
	{"한 달의 기적", "30일 연속 연습", model.ConditionConsecutiveDays, 30},
	{"백일의 약속", "100일 연속 연습", model.ConditionConsecutiveDays, 100},
	{"멀티 플레이어", "악기 3개 등록", model.ConditionInstrumentCount, 3},
	{"오케스트라 단원", "악기 5개 등록", model.ConditionInstrumentCount, 5},
}

// Seed 写入乐器、用户类型和默认成就，按名称去重，可重复执行
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, name := range defaultInstruments {
			inst := model.Instrument{Name: name, DisplayOrder: i + 1}
			if err := tx.Where(model.Instrument{Name: name}).FirstOrCreate(&inst).Error; err != nil {
				return err
			}
		}
		for i, name := range defaultUserTypes {
			ut := model.UserType{Name: name, DisplayOrder: i + 1}
			if err := tx.Where(model.UserType{Name: name}).FirstOrCreate(&ut).Error; err != nil {
				return err
			}
		}
		for _, a := range defaultAchievements {
			desc := a.description
			ach := model.Achievement{
				Title:          a.title,
				Description:    &desc,
				ConditionType:  a.conditionType,
				ConditionValue: a.value,
			}
			if err := tx.Where(model.Achievement{Title: a.title}).FirstOrCreate(&ach).Error; err != nil {
				return err
			}
		}
		zap.L().Info("seed finished",
			zap.Int("instruments", len(defaultInstruments)),
			zap.Int("user_types", len(defaultUserTypes)),
			zap.Int("achievements", len(defaultAchievements)),
		)
		return nil
	})
}
