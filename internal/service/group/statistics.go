package group

import (
	"sort"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/service/practice"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"go.uber.org/zap"
)

const (
	periodAll  = "all"
	periodWeek = "week"
)

// Statistics 群组练习统计
// period=week 时只统计本周一以来的记录，每日数据始终为本周一到周日
func (g *groupInfoService) Statistics(userID, groupID uint, q request.GroupStatisticsQuery) (*respond.GroupStatisticsRespond, error) {
	if _, _, err := g.accessible(groupID, userID); err != nil {
		return nil, err
	}
	period := q.Period
	if period == "" {
		period = periodAll
	}
	rsp := &respond.GroupStatisticsRespond{
		GroupID:           groupID,
		Period:            period,
		DailyPracticeTime: make([]int64, 7),
	}

	members, err := g.repos.GroupMember.ListWithUser(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if len(members) == 0 {
		return rsp, nil
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}

	week := practice.WeekDates(practice.MondayOf(g.now()))
	fromDate := ""
	if period == periodWeek {
		fromDate = week[0]
	}
	totals, err := g.repos.Practice.Totals(ids, fromDate)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp.TotalMembers = len(members)
	var best *repository.PracticeTotal
	for i := range totals {
		rsp.TotalPracticeTime += totals[i].TotalSeconds
		rsp.TotalSessions += totals[i].Sessions
		if totals[i].TotalSeconds > 0 && (best == nil || totals[i].TotalSeconds > best.TotalSeconds) {
			best = &totals[i]
		}
	}
	rsp.AveragePracticeTime = rsp.TotalPracticeTime / int64(len(members))
	rsp.AverageSessionsPerMember = float64(rsp.TotalSessions) / float64(len(members))
	if best != nil {
		most := &respond.MostActiveMemberRespond{UserID: best.UserID, TotalTime: best.TotalSeconds}
		for _, m := range members {
			if m.UserID == best.UserID {
				most.Nickname = m.User.Nickname
				break
			}
		}
		rsp.MostActiveMember = most
	}

	daily, err := g.repos.Practice.DailyTotals(ids, week[0], week[6])
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	dayIndex := make(map[string]int, len(week))
	for i, d := range week {
		dayIndex[d] = i
	}
	for _, row := range daily {
		if i, ok := dayIndex[row.PracticeDate]; ok {
			rsp.DailyPracticeTime[i] += row.Seconds
		}
	}
	return rsp, nil
}

// MemberStatistics 每个成员的练习统计，按总时长倒序
func (g *groupInfoService) MemberStatistics(userID, groupID uint) (*respond.MemberStatisticsListRespond, error) {
	if _, _, err := g.accessible(groupID, userID); err != nil {
		return nil, err
	}
	members, err := g.repos.GroupMember.ListWithUser(groupID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	totals, err := g.repos.Practice.Totals(ids, "")
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	byUser := make(map[uint]repository.PracticeTotal, len(totals))
	for _, t := range totals {
		byUser[t.UserID] = t
	}

	now := g.now()
	rsp := &respond.MemberStatisticsListRespond{
		GroupID: groupID,
		Members: make([]respond.MemberStatisticsRespond, 0, len(members)),
	}
	for _, m := range members {
		stat := respond.MemberStatisticsRespond{
			UserID:          m.UserID,
			Nickname:        m.User.Nickname,
			ProfileImageURL: m.User.ProfileImageURL,
			Role:            m.Role,
		}
		if t, ok := byUser[m.UserID]; ok && t.Sessions > 0 {
			stat.TotalPracticeTime = t.TotalSeconds
			stat.TotalSessions = t.Sessions
			last := t.LastDate
			stat.LastPracticeDate = &last

			streak, err := practice.Streak(g.repos.Practice, m.UserID, now)
			if err != nil {
				zap.L().Warn("member streak", zap.Uint("user_id", m.UserID), zap.Error(err))
			}
			stat.ConsecutiveDays = streak
		}
		rsp.Members = append(rsp.Members, stat)
	}
	sort.SliceStable(rsp.Members, func(i, j int) bool {
		return rsp.Members[i].TotalPracticeTime > rsp.Members[j].TotalPracticeTime
	})
	return rsp, nil
}
