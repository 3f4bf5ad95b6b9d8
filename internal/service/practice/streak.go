package practice

import (
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/pkg/constants"
)

// ConsecutiveDays 从 today 开始逐日回溯，遇到第一个没有练习的日期停止
// 最多回溯 STREAK_LOOKBACK_DAYS 天
func ConsecutiveDays(dates []string, today time.Time) int {
	practiced := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		practiced[d] = struct{}{}
	}
	streak := 0
	day := today
	for streak <= constants.STREAK_LOOKBACK_DAYS {
		if _, ok := practiced[day.Format(constants.DATE_LAYOUT)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Streak 查询用户的连续练习天数
func Streak(repo repository.PracticeRepository, userID uint, today time.Time) (int, error) {
	from := today.AddDate(0, 0, -constants.STREAK_LOOKBACK_DAYS).Format(constants.DATE_LAYOUT)
	dates, err := repo.CompletedDates(userID, from)
	if err != nil {
		return 0, err
	}
	return ConsecutiveDays(dates, today), nil
}

// WeekDates 从 start 开始连续 7 天
func WeekDates(start time.Time) []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(constants.DATE_LAYOUT)
	}
	return days
}

// MondayOf 所在周的周一
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
