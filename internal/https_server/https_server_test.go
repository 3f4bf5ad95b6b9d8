package https_server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"
	dao "github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	myredis "github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	ws "github.com/Min-owo17/Mysic/internal/gateway/websocket"
	"github.com/Min-owo17/Mysic/internal/handler"
	"github.com/Min-owo17/Mysic/internal/https_server"
	"github.com/Min-owo17/Mysic/internal/infrastructure/middleware"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/internal/service"
	"github.com/Min-owo17/Mysic/internal/service/notification"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Code int             `json:"code"`
	Msg  any             `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	URL   string
	repos *repository.Repositories
	hub   *ws.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := dao.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, dao.AutoMigrate(db))
	require.NoError(t, dao.Seed(db))

	conf := config.Default()
	conf.JWTConfig.Secret = "test-secret"

	tokens, err := jwt.NewManager(conf.JWTConfig.Secret, conf.JWTConfig.Algorithm, time.Hour)
	require.NoError(t, err)

	hub := ws.NewHub()
	broker := notification.NewChannelBroker(hub)
	ctx, cancel := context.WithCancel(context.Background())
	go broker.Start(ctx)

	repos := repository.NewRepositories(db)
	svc := service.NewServices(service.Deps{
		Repos:  repos,
		Tokens: tokens,
		Broker: broker,
	})
	require.NoError(t, handler.InitTrans("zh"))
	health := handler.NewHealthHandler(conf.MainConfig.AppName, db, myredis.NewNopCache(), false)
	engine := https_server.Init(conf, handler.NewHandlers(svc, hub, health), middleware.NewAuthenticator(tokens, svc.Auth))

	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		server.Close()
		hub.Close()
		cancel()
		broker.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testServer{URL: server.URL, repos: repos, hub: hub}
}

func mustJSON(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// doReq 发送请求并解析统一响应
func doReq(t *testing.T, method, url string, body any, token string) (int, apiEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = mustJSON(t, body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiEnvelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env apiEnvelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func register(t *testing.T, s *testServer, email, nickname string) respond.AuthRespond {
	t.Helper()
	status, env := doReq(t, http.MethodPost, s.URL+"/api/auth/register", map[string]any{
		"email":    email,
		"password": "pw123456",
		"nickname": nickname,
	}, "")
	require.Equal(t, http.StatusCreated, status, env.Msg)
	return decode[respond.AuthRespond](t, env)
}

func TestPostLikeCommentNotificationFlow(t *testing.T) {
	s := newTestServer(t)

	a := register(t, s, "a@x.com", "alice")
	b := register(t, s, "b@x.com", "bob")
	assert.Equal(t, "bearer", a.TokenType)

	status, env := doReq(t, http.MethodPost, s.URL+"/api/auth/login", map[string]any{
		"email":    "a@x.com",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, status)
	login := decode[respond.AuthRespond](t, env)
	assert.Equal(t, a.User.UserID, login.User.UserID)

	status, env = doReq(t, http.MethodPost, s.URL+"/api/board/posts", map[string]any{
		"title":   "音阶练习",
		"content": "每天二十分钟",
	}, a.AccessToken)
	require.Equal(t, http.StatusCreated, status, env.Msg)
	post := decode[respond.PostRespond](t, env)
	postURL := s.URL + "/api/board/posts/" + strconv.FormatUint(uint64(post.PostID), 10)

	status, env = doReq(t, http.MethodPost, postURL+"/likes", nil, b.AccessToken)
	require.Equal(t, http.StatusOK, status)
	like := decode[respond.LikeRespond](t, env)
	assert.True(t, like.IsLiked)
	assert.Equal(t, 1, like.LikeCount)

	status, env = doReq(t, http.MethodPost, postURL+"/comments", map[string]any{
		"content": "学到了",
	}, b.AccessToken)
	require.Equal(t, http.StatusCreated, status, env.Msg)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/notifications", nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	list := decode[respond.NotificationListRespond](t, env)
	before := list.UnreadCount
	var commentNotification *respond.NotificationRespond
	for i := range list.Notifications {
		if list.Notifications[i].Type == model.NotificationComment {
			commentNotification = &list.Notifications[i]
		}
	}
	require.NotNil(t, commentNotification)
	assert.EqualValues(t, 2, before)

	readURL := s.URL + "/api/notifications/" + strconv.FormatUint(uint64(commentNotification.NotificationID), 10) + "/read"
	status, _ = doReq(t, http.MethodPatch, readURL, nil, b.AccessToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doReq(t, http.MethodPatch, readURL, nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[respond.NotificationRespond](t, env).IsRead)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/notifications", nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, before-1, decode[respond.NotificationListRespond](t, env).UnreadCount)
}

func TestNotificationPushedOverWebSocket(t *testing.T) {
	s := newTestServer(t)
	a := register(t, s, "a@x.com", "alice")
	b := register(t, s, "b@x.com", "bob")

	status, env := doReq(t, http.MethodPost, s.URL+"/api/board/posts", map[string]any{
		"title":   "t",
		"content": "c",
	}, a.AccessToken)
	require.Equal(t, http.StatusCreated, status)
	post := decode[respond.PostRespond](t, env)

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/api/notifications/ws?token=" + a.AccessToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Online(a.User.UserID) }, 2*time.Second, 10*time.Millisecond)

	status, _ = doReq(t, http.MethodPost, s.URL+"/api/board/posts/"+strconv.FormatUint(uint64(post.PostID), 10)+"/likes", nil, b.AccessToken)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var pushed respond.NotificationRespond
	require.NoError(t, json.Unmarshal(payload, &pushed))
	assert.Equal(t, model.NotificationLike, pushed.Type)
	assert.Equal(t, a.User.UserID, pushed.ReceiverID)
	require.NotNil(t, pushed.SenderNickname)
	assert.Equal(t, "bob", *pushed.SenderNickname)
}

func TestWebSocketRequiresToken(t *testing.T) {
	s := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/api/notifications/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthAndErrorMapping(t *testing.T) {
	s := newTestServer(t)

	status, env := doReq(t, http.MethodGet, s.URL+"/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"database":"connected"`)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/instruments", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]model.Instrument](t, env), 12)

	status, _ = doReq(t, http.MethodGet, s.URL+"/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doReq(t, http.MethodGet, s.URL+"/api/users/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)

	// 参数校验错误返回字段 -> 提示
	status, env = doReq(t, http.MethodPost, s.URL+"/api/auth/register", map[string]any{
		"email":    "bad",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	msg, ok := env.Msg.(map[string]any)
	require.True(t, ok, env.Msg)
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "nickname")

	a := register(t, s, "a@x.com", "alice")

	status, _ = doReq(t, http.MethodPost, s.URL+"/api/auth/register", map[string]any{
		"email":    "a@x.com",
		"password": "pw123456",
		"nickname": "other",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doReq(t, http.MethodPost, s.URL+"/api/auth/login", map[string]any{
		"email":    "a@x.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/auth/me", nil, a.AccessToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", decode[respond.UserRespond](t, env).Nickname)

	status, _ = doReq(t, http.MethodGet, s.URL+"/api/board/posts/999", nil, a.AccessToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doReq(t, http.MethodGet, s.URL+"/api/board/posts/abc", nil, a.AccessToken)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doReq(t, http.MethodGet, s.URL+"/api/admin/users", nil, a.AccessToken)
	assert.Equal(t, http.StatusForbidden, status)

	require.NoError(t, s.repos.User.Updates(a.User.UserID, map[string]any{"is_admin": true}))
	status, env = doReq(t, http.MethodGet, s.URL+"/api/admin/users", nil, a.AccessToken)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decode[respond.UserListRespond](t, env).Total)

	// 停用后旧 Token 失效
	require.NoError(t, s.repos.User.Updates(a.User.UserID, map[string]any{"is_active": false}))
	status, _ = doReq(t, http.MethodGet, s.URL+"/api/auth/me", nil, a.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPracticeSessionRoutes(t *testing.T) {
	s := newTestServer(t)
	a := register(t, s, "a@x.com", "alice")
	today := time.Now().Format("2006-01-02")

	status, env := doReq(t, http.MethodPost, s.URL+"/api/practice/sessions", map[string]any{
		"practice_date": today,
	}, a.AccessToken)
	require.Equal(t, http.StatusCreated, status, env.Msg)
	session := decode[respond.SessionRespond](t, env)

	status, _ = doReq(t, http.MethodPost, s.URL+"/api/practice/sessions", map[string]any{
		"practice_date": today,
	}, a.AccessToken)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/practice/sessions/active", nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, session.SessionID, decode[respond.SessionRespond](t, env).SessionID)

	sessionURL := s.URL + "/api/practice/sessions/" + strconv.FormatUint(uint64(session.SessionID), 10)
	status, env = doReq(t, http.MethodPut, sessionURL, map[string]any{
		"actual_play_time": 600,
	}, a.AccessToken)
	require.Equal(t, http.StatusOK, status, env.Msg)
	ended := decode[respond.SessionRespond](t, env)
	assert.Equal(t, model.PracticeCompleted, ended.Status)

	status, env = doReq(t, http.MethodGet, s.URL+"/api/practice/sessions/active", nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, env = doReq(t, http.MethodGet, s.URL+"/api/practice/statistics", nil, a.AccessToken)
	require.Equal(t, http.StatusOK, status)
	stats := decode[respond.PracticeStatisticsRespond](t, env)
	assert.EqualValues(t, 600, stats.TotalPracticeTime)
	assert.Equal(t, 1, stats.ConsecutiveDays)

	req, err := http.NewRequest(http.MethodDelete, sessionURL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+a.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	status, _ = doReq(t, http.MethodGet, sessionURL, nil, a.AccessToken)
	assert.Equal(t, http.StatusNotFound, status)
}
