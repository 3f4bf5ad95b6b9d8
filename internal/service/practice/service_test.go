package practice

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEvaluator struct {
	calls int
}

func (e *countingEvaluator) Evaluate(userID uint) []model.Achievement {
	e.calls++
	return nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://storage.local/" + key, nil
}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := mysql.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewRepositories(db)
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

func fixedNow(s *practiceService, now time.Time) {
	s.now = func() time.Time { return now }
}

func TestConsecutiveDays(t *testing.T) {
	today := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"没有练习", nil, 0},
		{"今天没练", []string{"2024-03-09", "2024-03-08"}, 0},
		{"今天和昨天", []string{"2024-03-10", "2024-03-09"}, 2},
		{"中间断开", []string{"2024-03-10", "2024-03-09", "2024-03-07"}, 2},
		{"跨月", []string{"2024-03-01", "2024-02-29", "2024-02-28"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsecutiveDays(tt.dates, today))
		})
	}
}

func TestConsecutiveDaysCapped(t *testing.T) {
	today := time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)
	dates := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	assert.Equal(t, 366, ConsecutiveDays(dates, today))
}

func TestMondayOf(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-03-04", MondayOf(sunday).Format("2006-01-02"))
	monday := time.Date(2024, 3, 4, 1, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-03-04", MondayOf(monday).Format("2006-01-02"))
}

func TestStartAndEndSession(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "alice")
	eval := &countingEvaluator{}
	svc := NewPracticeService(repos, nil, eval)
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	fixedNow(svc, start)

	session, err := svc.StartSession(user.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, model.PracticeInProgress, session.Status)

	_, err = svc.StartSession(user.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	active, err := svc.ActiveSession(user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.SessionID, active.SessionID)

	fixedNow(svc, start.Add(25*time.Minute))
	ended, err := svc.EndSession(user.ID, session.SessionID, request.EndSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.PracticeCompleted, ended.Status)
	assert.Equal(t, 1500, ended.ActualPlayTime)
	assert.Equal(t, 1, eval.calls)

	_, err = svc.EndSession(user.ID, session.SessionID, request.EndSessionRequest{})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))

	active, err = svc.ActiveSession(user.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestEndSessionEndBeforeStart(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "alice")
	svc := NewPracticeService(repos, nil, nil)
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	fixedNow(svc, start)

	session, err := svc.StartSession(user.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	require.NoError(t, err)

	earlier := start.Add(-time.Minute)
	ended, err := svc.EndSession(user.ID, session.SessionID, request.EndSessionRequest{EndTime: &earlier})
	require.NoError(t, err)
	assert.Equal(t, 0, ended.ActualPlayTime)
}

func TestSessionOwnership(t *testing.T) {
	repos := newTestRepos(t)
	alice := createUser(t, repos, "alice")
	bob := createUser(t, repos, "bob")
	svc := NewPracticeService(repos, nil, nil)

	session, err := svc.StartSession(alice.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	require.NoError(t, err)

	_, err = svc.GetSession(bob.ID, session.SessionID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(svc.DeleteSession(bob.ID, session.SessionID)))

	_, err = svc.ListSessions(bob.ID, request.ListSessionsQuery{UserID: alice.ID})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	require.NoError(t, svc.DeleteSession(alice.ID, session.SessionID))
	_, err = svc.GetSession(alice.ID, session.SessionID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestListSessionsOfGroupMate(t *testing.T) {
	repos := newTestRepos(t)
	alice := createUser(t, repos, "alice")
	bob := createUser(t, repos, "bob")
	group := &model.Group{GroupName: "晨练", OwnerID: alice.ID, MaxMembers: 10}
	require.NoError(t, repos.Group.Create(group))
	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{GroupID: group.ID, UserID: alice.ID, Role: model.GroupRoleOwner, JoinedAt: time.Now()}))
	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{GroupID: group.ID, UserID: bob.ID, Role: model.GroupRoleMember, JoinedAt: time.Now()}))
	completed(t, repos, alice.ID, "2024-03-09", 600)
	completed(t, repos, alice.ID, "2024-03-10", 900)

	svc := NewPracticeService(repos, nil, nil)
	list, err := svc.ListSessions(bob.ID, request.ListSessionsQuery{UserID: alice.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, "2024-03-10", list.Sessions[0].PracticeDate)
}

func TestStatistics(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "alice")
	svc := NewPracticeService(repos, nil, nil)
	fixedNow(svc, time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local))

	empty, err := svc.Statistics(user.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalSessions)
	assert.Nil(t, empty.LastPracticeDate)
	assert.Nil(t, empty.AverageSessionTime)

	completed(t, repos, user.ID, "2024-03-10", 1200)
	completed(t, repos, user.ID, "2024-03-09", 600)
	completed(t, repos, user.ID, "2024-03-07", 300)

	stats, err := svc.Statistics(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2100, stats.TotalPracticeTime)
	assert.EqualValues(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.ConsecutiveDays)
	require.NotNil(t, stats.LastPracticeDate)
	assert.Equal(t, "2024-03-10", *stats.LastPracticeDate)
	require.NotNil(t, stats.AverageSessionTime)
	assert.InDelta(t, 700, *stats.AverageSessionTime, 0.001)
}

func setProfile(t *testing.T, repos *repository.Repositories, userID, primary uint, typeIDs ...uint) {
	t.Helper()
	profile := &model.UserProfile{UserID: userID}
	require.NoError(t, repos.Profile.Create(profile))
	require.NoError(t, repos.Profile.ReplaceInstruments(profile.ID, []model.UserProfileInstrument{{InstrumentID: primary, IsPrimary: true}}))
	items := make([]model.UserProfileUserType, 0, len(typeIDs))
	for _, id := range typeIDs {
		items = append(items, model.UserProfileUserType{UserTypeID: id})
	}
	require.NoError(t, repos.Profile.ReplaceUserTypes(profile.ID, items))
}

func TestWeeklyAverage(t *testing.T) {
	repos := newTestRepos(t)
	me := createUser(t, repos, "me")
	peer1 := createUser(t, repos, "peer1")
	peer2 := createUser(t, repos, "peer2")
	superset := createUser(t, repos, "superset")
	setProfile(t, repos, me.ID, 1, 1)
	setProfile(t, repos, peer1.ID, 1, 1)
	setProfile(t, repos, peer2.ID, 1, 1)
	setProfile(t, repos, superset.ID, 1, 1, 2)

	week := WeekDates(time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local))
	for _, d := range week {
		completed(t, repos, peer1.ID, d, 600)
	}
	completed(t, repos, peer2.ID, week[0], 1200)
	completed(t, repos, superset.ID, week[0], 9999)
	completed(t, repos, me.ID, week[0], 5000)

	svc := NewPracticeService(repos, nil, nil)
	rsp, err := svc.WeeklyAverage(me.ID, request.WeeklyAverageQuery{StartDate: week[0], EndDate: week[6]})
	require.NoError(t, err)
	assert.Equal(t, 2, rsp.TotalUsers)
	require.Len(t, rsp.DailyAverages, 7)
	assert.EqualValues(t, 900, rsp.DailyAverages[0])
	assert.EqualValues(t, 600, rsp.DailyAverages[1])
	assert.Equal(t, 50, rsp.ConsistencyPercentage)
}

func TestWeeklyAverageCountsZeroSecondSessions(t *testing.T) {
	repos := newTestRepos(t)
	me := createUser(t, repos, "me")
	busy := createUser(t, repos, "busy")
	idle := createUser(t, repos, "idle")
	setProfile(t, repos, me.ID, 1, 1)
	setProfile(t, repos, busy.ID, 1, 1)
	setProfile(t, repos, idle.ID, 1, 1)

	week := WeekDates(time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local))
	for _, d := range week {
		completed(t, repos, busy.ID, d, 600)
		completed(t, repos, idle.ID, d, 0)
	}

	svc := NewPracticeService(repos, nil, nil)
	rsp, err := svc.WeeklyAverage(me.ID, request.WeeklyAverageQuery{StartDate: week[0], EndDate: week[6]})
	require.NoError(t, err)
	assert.Equal(t, 2, rsp.TotalUsers)
	require.Len(t, rsp.DailyAverages, 7)
	assert.EqualValues(t, 300, rsp.DailyAverages[0])
	assert.EqualValues(t, 300, rsp.DailyAverages[6])
	assert.Equal(t, 100, rsp.ConsistencyPercentage)
}

func TestWeeklyAverageWithoutProfile(t *testing.T) {
	repos := newTestRepos(t)
	me := createUser(t, repos, "me")
	svc := NewPracticeService(repos, nil, nil)

	rsp, err := svc.WeeklyAverage(me.ID, request.WeeklyAverageQuery{StartDate: "2024-03-04", EndDate: "2024-03-10"})
	require.NoError(t, err)
	assert.Zero(t, rsp.TotalUsers)
	assert.Equal(t, make([]int64, 7), rsp.DailyAverages)

	_, err = svc.WeeklyAverage(me.ID, request.WeeklyAverageQuery{StartDate: "2024-03-10", EndDate: "2024-03-04"})
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestRecordingLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "alice")
	store := &memoryStorage{objects: make(map[string][]byte)}
	svc := NewPracticeService(repos, store, nil)

	session, err := svc.StartSession(user.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	require.NoError(t, err)

	rec, err := svc.UploadRecording(user.ID, session.SessionID, multipartFile(t, "take1.m4a", []byte("audio")))
	require.NoError(t, err)
	assert.Equal(t, "take1.m4a", rec.FileName)
	assert.EqualValues(t, 5, rec.FileSize)
	assert.Contains(t, rec.URL, "recordings/")
	assert.Len(t, store.objects, 1)

	list, err := svc.ListRecordings(user.ID, session.SessionID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteRecording(user.ID, rec.RecordingID))
	assert.Empty(t, store.objects)
	list, err = svc.ListRecordings(user.ID, session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadRecordingStorageDisabled(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "alice")
	svc := NewPracticeService(repos, nil, nil)

	session, err := svc.StartSession(user.ID, request.CreateSessionRequest{PracticeDate: "2024-03-10"})
	require.NoError(t, err)

	_, err = svc.UploadRecording(user.ID, session.SessionID, multipartFile(t, "take1.m4a", []byte("audio")))
	assert.Equal(t, errorx.CodeBadRequest, errorx.GetCode(err))
}
