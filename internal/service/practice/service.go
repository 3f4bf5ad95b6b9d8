// Package practice 实现练习记录、统计与录音
package practice

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/infrastructure/storage"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/constants"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recordingURLExpiry = time.Hour

// achievementEvaluator 练习结束后检查成就
type achievementEvaluator interface {
	Evaluate(userID uint) []model.Achievement
}

// practiceService 练习业务实现
type practiceService struct {
	repos     *repository.Repositories
	storage   storage.ObjectStorage
	evaluator achievementEvaluator
	now       func() time.Time
}

// NewPracticeService 构造函数，evaluator 可为 nil
func NewPracticeService(repos *repository.Repositories, objectStorage storage.ObjectStorage, evaluator achievementEvaluator) *practiceService {
	if objectStorage == nil {
		objectStorage = storage.DisabledStorage{}
	}
	return &practiceService{
		repos:     repos,
		storage:   objectStorage,
		evaluator: evaluator,
		now:       time.Now,
	}
}

var errSessionNotFound = errorx.New(errorx.CodeNotFound, "练习记录不存在")

// ownedSession 只返回自己的记录，他人的记录视为不存在
func (s *practiceService) ownedSession(userID, sessionID uint) (*model.PracticeSession, error) {
	session, err := s.repos.Practice.FindByID(sessionID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errSessionNotFound
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if session.UserID != userID {
		return nil, errSessionNotFound
	}
	return session, nil
}

func (s *practiceService) checkInstrument(id *uint) error {
	if id == nil {
		return nil
	}
	found, err := s.repos.Reference.FindInstrumentsByIDs([]uint{*id})
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if len(found) == 0 {
		return errorx.Newf(errorx.CodeBadRequest, "乐器不存在: %d", *id)
	}
	return nil
}

// StartSession 开始练习，同时只能有一条进行中的记录
func (s *practiceService) StartSession(userID uint, req request.CreateSessionRequest) (*respond.SessionRespond, error) {
	if _, err := s.repos.Practice.FindActive(userID); err == nil {
		return nil, errorx.New(errorx.CodeBadRequest, "已有进行中的练习，请先结束")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if err := s.checkInstrument(req.InstrumentID); err != nil {
		return nil, err
	}

	session := &model.PracticeSession{
		UserID:       userID,
		PracticeDate: req.PracticeDate,
		StartTime:    s.now(),
		Status:       model.PracticeInProgress,
		InstrumentID: req.InstrumentID,
		Notes:        req.Notes,
	}
	if err := s.repos.Practice.Create(session); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("practice started", zap.Uint("user_id", userID), zap.Uint("session_id", session.ID))
	return s.reload(session.ID)
}

// EndSession 结束练习
// 未传 actual_play_time 时取 max(0, end_time - start_time)
func (s *practiceService) EndSession(userID, sessionID uint, req request.EndSessionRequest) (*respond.SessionRespond, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.PracticeCompleted {
		return nil, errorx.New(errorx.CodeBadRequest, "练习已结束")
	}
	if err := s.checkInstrument(req.InstrumentID); err != nil {
		return nil, err
	}

	end := s.now()
	if req.EndTime != nil {
		end = *req.EndTime
	}
	playTime := 0
	if req.ActualPlayTime != nil {
		playTime = *req.ActualPlayTime
	} else if elapsed := int(end.Sub(session.StartTime).Seconds()); elapsed > 0 {
		playTime = elapsed
	}

	session.EndTime = &end
	session.ActualPlayTime = playTime
	session.Status = model.PracticeCompleted
	if req.InstrumentID != nil {
		session.InstrumentID = req.InstrumentID
		session.Instrument = nil
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if err := s.repos.Practice.Save(session); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("practice completed",
		zap.Uint("user_id", userID),
		zap.Uint("session_id", sessionID),
		zap.Int("seconds", playTime),
	)

	if s.evaluator != nil {
		s.evaluator.Evaluate(userID)
	}
	return s.reload(session.ID)
}

func (s *practiceService) reload(sessionID uint) (*respond.SessionRespond, error) {
	session, err := s.repos.Practice.FindByID(sessionID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := respond.NewSessionRespond(session)
	return &rsp, nil
}

// ListSessions 练习记录列表
// 查看他人记录时要求双方在同一群组
func (s *practiceService) ListSessions(userID uint, q request.ListSessionsQuery) (*respond.SessionListRespond, error) {
	target := userID
	if q.UserID != 0 && q.UserID != userID {
		shared, err := s.repos.GroupMember.ShareGroup(userID, q.UserID)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if !shared {
			return nil, errorx.New(errorx.CodeForbidden, "只能查看同一群组成员的练习记录")
		}
		target = q.UserID
	}

	page, pageSize := q.Normalize()
	sessions, total, err := s.repos.Practice.List(repository.PracticeFilter{
		UserID:       target,
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		InstrumentID: q.InstrumentID,
	}, page, pageSize)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.SessionListRespond{
		Sessions: make([]respond.SessionRespond, 0, len(sessions)),
		PageInfo: respond.NewPageInfo(total, page, pageSize),
	}
	for i := range sessions {
		rsp.Sessions = append(rsp.Sessions, respond.NewSessionRespond(&sessions[i]))
	}
	return rsp, nil
}

// ActiveSession 进行中的练习，没有时返回 nil
func (s *practiceService) ActiveSession(userID uint) (*respond.SessionRespond, error) {
	session, err := s.repos.Practice.FindActive(userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := respond.NewSessionRespond(session)
	return &rsp, nil
}

// GetSession 查看自己的练习记录
func (s *practiceService) GetSession(userID, sessionID uint) (*respond.SessionRespond, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	rsp := respond.NewSessionRespond(session)
	return &rsp, nil
}

// DeleteSession 删除练习记录及录音
func (s *practiceService) DeleteSession(userID, sessionID uint) error {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return err
	}
	recordings, err := s.repos.Recording.ListBySession(sessionID)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if err := s.repos.Practice.Delete(sessionID); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	for _, rec := range recordings {
		s.removeObject(rec.ObjectKey)
	}
	return nil
}

// Statistics 个人练习统计
func (s *practiceService) Statistics(userID uint) (*respond.PracticeStatisticsRespond, error) {
	totals, err := s.repos.Practice.Totals([]uint{userID}, "")
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.PracticeStatisticsRespond{}
	if len(totals) == 0 || totals[0].Sessions == 0 {
		return rsp, nil
	}
	t := totals[0]
	rsp.TotalPracticeTime = t.TotalSeconds
	rsp.TotalSessions = t.Sessions
	lastDate := t.LastDate
	rsp.LastPracticeDate = &lastDate
	avg := float64(t.TotalSeconds) / float64(t.Sessions)
	rsp.AverageSessionTime = &avg

	streak, err := Streak(s.repos.Practice, userID, s.now())
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	rsp.ConsecutiveDays = streak
	return rsp, nil
}

func emptyWeekly() *respond.WeeklyAverageRespond {
	return &respond.WeeklyAverageRespond{DailyAverages: make([]int64, 7)}
}

// WeeklyAverage 主乐器相同且用户类型集合完全相同的其他用户的周平均
// 每日平均只除以当天练习过的人数
func (s *practiceService) WeeklyAverage(userID uint, q request.WeeklyAverageQuery) (*respond.WeeklyAverageRespond, error) {
	start, err := time.ParseInLocation(constants.DATE_LAYOUT, q.StartDate, time.Local)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "start_date 格式错误")
	}
	if q.EndDate < q.StartDate {
		return nil, errorx.New(errorx.CodeBadRequest, "end_date 不能早于 start_date")
	}

	profile, err := s.repos.Profile.FindByUserID(userID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return emptyWeekly(), nil
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	primary := profile.PrimaryInstrumentID()
	typeIDs := profile.UserTypeIDs()
	if primary == 0 || len(typeIDs) == 0 {
		return emptyWeekly(), nil
	}

	candidates, err := s.repos.Profile.FindByPrimaryInstrument(primary, userID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	cohort := make([]uint, 0, len(candidates))
	for i := range candidates {
		if sameSet(typeIDs, candidates[i].UserTypeIDs()) {
			cohort = append(cohort, candidates[i].UserID)
		}
	}
	if len(cohort) == 0 {
		return emptyWeekly(), nil
	}

	days := WeekDates(start)
	rows, err := s.repos.Practice.DailyTotals(cohort, days[0], days[6])
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return weeklyAverage(days, cohort, rows), nil
}

// weeklyAverage 按天汇总参与者的平均值与七天全勤比例
func weeklyAverage(days []string, cohort []uint, rows []repository.DailyTotal) *respond.WeeklyAverageRespond {
	dayIndex := make(map[string]int, len(days))
	for i, d := range days {
		dayIndex[d] = i
	}
	sums := make([]int64, len(days))
	participants := make([]int64, len(days))
	practicedDays := make(map[uint]int, len(cohort))
	for _, row := range rows {
		i, ok := dayIndex[row.PracticeDate]
		if !ok {
			continue
		}
		sums[i] += row.Seconds
		participants[i]++
		practicedDays[row.UserID]++
	}

	rsp := &respond.WeeklyAverageRespond{
		DailyAverages: make([]int64, len(days)),
		TotalUsers:    len(cohort),
	}
	for i := range days {
		if participants[i] > 0 {
			rsp.DailyAverages[i] = sums[i] / participants[i]
		}
	}
	everyDay := 0
	for _, uid := range cohort {
		if practicedDays[uid] == len(days) {
			everyDay++
		}
	}
	rsp.ConsistencyPercentage = everyDay * 100 / len(cohort)
	return rsp
}

// sameSet 两个 ID 集合是否完全相同
func sameSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uint]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

// UploadRecording 上传练习录音到对象存储
func (s *practiceService) UploadRecording(userID, sessionID uint, file *multipart.FileHeader) (*respond.RecordingRespond, error) {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return nil, err
	}
	if file.Size <= 0 || file.Size > constants.RECORDING_MAX_SIZE {
		return nil, errorx.Newf(errorx.CodeBadRequest, "录音文件大小需在 1B 到 %dMB 之间", constants.RECORDING_MAX_SIZE>>20)
	}
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	src, err := file.Open()
	if err != nil {
		zap.L().Error("open upload file", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	defer src.Close()

	key := fmt.Sprintf("recordings/%d/%d/%s%s", userID, sessionID, uuid.NewString(), filepath.Ext(file.Filename))
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.storage.Put(ctx, key, src, file.Size, contentType); err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return nil, errorx.New(errorx.CodeBadRequest, "录音存储未启用")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rec := &model.RecordingFile{
		SessionID:   sessionID,
		UserID:      userID,
		ObjectKey:   key,
		FileName:    filepath.Base(file.Filename),
		FileSize:    file.Size,
		ContentType: contentType,
	}
	if err := s.repos.Recording.Create(rec); err != nil {
		zap.L().Error(err.Error())
		s.removeObject(key)
		return nil, errorx.ErrServerBusy
	}
	rsp := s.recordingRespond(ctx, rec)
	return &rsp, nil
}

// ListRecordings 练习记录下的录音，带临时下载地址
func (s *practiceService) ListRecordings(userID, sessionID uint) ([]respond.RecordingRespond, error) {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return nil, err
	}
	recs, err := s.repos.Recording.ListBySession(sessionID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rsp := make([]respond.RecordingRespond, 0, len(recs))
	for i := range recs {
		rsp = append(rsp, s.recordingRespond(ctx, &recs[i]))
	}
	return rsp, nil
}

// DeleteRecording 删除自己的录音
func (s *practiceService) DeleteRecording(userID, recordingID uint) error {
	rec, err := s.repos.Recording.FindByID(recordingID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "录音不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if rec.UserID != userID {
		return errorx.New(errorx.CodeNotFound, "录音不存在")
	}
	if err := s.repos.Recording.SoftDelete(rec.ID); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	s.removeObject(rec.ObjectKey)
	return nil
}

func (s *practiceService) recordingRespond(ctx context.Context, rec *model.RecordingFile) respond.RecordingRespond {
	rsp := respond.RecordingRespond{
		RecordingID: rec.ID,
		SessionID:   rec.SessionID,
		FileName:    rec.FileName,
		FileSize:    rec.FileSize,
		ContentType: rec.ContentType,
		CreatedAt:   rec.CreatedAt,
	}
	if url, err := s.storage.PresignedURL(ctx, rec.ObjectKey, recordingURLExpiry); err == nil {
		rsp.URL = url
	}
	return rsp
}

func (s *practiceService) removeObject(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.storage.Delete(ctx, key); err != nil {
		zap.L().Warn("delete recording object", zap.String("key", key), zap.Error(err))
	}
}
