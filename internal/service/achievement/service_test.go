package achievement

import (
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*achievementService, *repository.Repositories) {
	t.Helper()
	db, err := mysql.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	require.NoError(t, mysql.Seed(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repos := repository.NewRepositories(db)
	svc := NewAchievementService(repos, redis.NewNopCache())
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 21, 0, 0, 0, time.Local) }
	return svc, repos
}

func createUser(t *testing.T, repos *repository.Repositories, nickname string) *model.User {
	t.Helper()
	u := &model.User{Email: nickname + "@x.com", Nickname: nickname, UniqueCode: "code-" + nickname, IsActive: true}
	require.NoError(t, repos.User.Create(u))
	return u
}

func completed(t *testing.T, repos *repository.Repositories, userID uint, date string, seconds int) {
	t.Helper()
	require.NoError(t, repos.Practice.Create(&model.PracticeSession{
		UserID:         userID,
		PracticeDate:   date,
		StartTime:      time.Now(),
		ActualPlayTime: seconds,
		Status:         model.PracticeCompleted,
	}))
}

func titles(items []model.Achievement) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Title)
	}
	return out
}

func TestEvaluateAwardsOnceAndNeverRevokes(t *testing.T) {
	svc, repos := newTestService(t)
	user := createUser(t, repos, "alice")

	assert.Empty(t, svc.Evaluate(user.ID))

	completed(t, repos, user.ID, "2024-03-10", 3600)
	earned := svc.Evaluate(user.ID)
	assert.ElementsMatch(t, []string{"연습의 시작", "첫 걸음"}, titles(earned))

	assert.Empty(t, svc.Evaluate(user.ID))

	my, err := svc.My(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, my.Total)
}

func TestEvaluateStreak(t *testing.T) {
	svc, repos := newTestService(t)
	user := createUser(t, repos, "alice")
	for i := 0; i < 7; i++ {
		date := time.Date(2024, 3, 10-i, 0, 0, 0, 0, time.Local).Format("2006-01-02")
		completed(t, repos, user.ID, date, 60)
	}

	earned := svc.Evaluate(user.ID)
	assert.ElementsMatch(t, []string{"첫 걸음", "일주일 개근"}, titles(earned))
}

func TestEvaluateInstrumentCount(t *testing.T) {
	svc, repos := newTestService(t)
	user := createUser(t, repos, "alice")
	profile := &model.UserProfile{UserID: user.ID}
	require.NoError(t, repos.Profile.Create(profile))
	require.NoError(t, repos.Profile.ReplaceInstruments(profile.ID, []model.UserProfileInstrument{
		{InstrumentID: 1, IsPrimary: true}, {InstrumentID: 2}, {InstrumentID: 3},
	}))

	check := svc.Check(user.ID)
	assert.Equal(t, 1, check.Total)
	assert.Equal(t, []string{"멀티 플레이어"}, titles(check.NewAchievements))
}

func TestSelectRequiresHeldAchievement(t *testing.T) {
	svc, repos := newTestService(t)
	user := createUser(t, repos, "alice")
	list, err := svc.List()
	require.NoError(t, err)
	require.Equal(t, 10, list.Total)
	first := list.Achievements[0].ID

	err = svc.Select(user.ID, &first)
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	completed(t, repos, user.ID, "2024-03-10", 3600)
	svc.Evaluate(user.ID)
	require.NoError(t, svc.Select(user.ID, &first))
	got, err := repos.User.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SelectedAchievementID)
	assert.Equal(t, first, *got.SelectedAchievementID)

	require.NoError(t, svc.Select(user.ID, nil))
	got, err = repos.User.FindByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SelectedAchievementID)
}

func TestAdminCRUD(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(request.CreateAchievementRequest{Title: "연습의 시작", ConditionType: model.ConditionPracticeTime, ConditionValue: 1})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	a, err := svc.Create(request.CreateAchievementRequest{Title: "마라톤", ConditionType: model.ConditionPracticeTime, ConditionValue: 7200})
	require.NoError(t, err)

	value := int64(10800)
	updated, err := svc.Update(a.ID, request.UpdateAchievementRequest{ConditionValue: &value})
	require.NoError(t, err)
	assert.EqualValues(t, 10800, updated.ConditionValue)

	require.NoError(t, svc.Delete(a.ID))
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(svc.Delete(a.ID)))
}
