package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader map[uint]*model.User

func (s stubLoader) LoadActiveUser(userID uint) (*model.User, error) {
	u, ok := s[userID]
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
	}
	if !u.IsActive {
		return nil, errorx.New(errorx.CodeUnauthorized, "账号已停用")
	}
	return u, nil
}

func newEngine(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := jwt.NewManager("secret", "HS256", time.Hour)
	require.NoError(t, err)

	users := stubLoader{
		1: {ID: 1, Nickname: "member", IsActive: true},
		2: {ID: 2, Nickname: "admin", IsActive: true, IsAdmin: true},
		3: {ID: 3, Nickname: "inactive"},
	}
	auth := NewAuthenticator(tokens, users)

	r := gin.New()
	r.GET("/me", auth.JWTAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Nickname)
	})
	r.GET("/ws", auth.WsJWTAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", CurrentUserID(c))
	})
	r.GET("/admin", auth.JWTAuth(), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func serve(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r, tokens := newEngine(t)
	member, err := tokens.Generate(1)
	require.NoError(t, err)
	inactive, err := tokens.Generate(3)
	require.NoError(t, err)
	missing, err := tokens.Generate(99)
	require.NoError(t, err)

	w := serve(r, "/me", "Bearer "+member)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "member", w.Body.String())

	for _, header := range []string{"", member, "Basic " + member, "Bearer ", "Bearer broken", "Bearer " + inactive, "Bearer " + missing} {
		w = serve(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"code":1006`)
	}

	// 普通接口不接受 query 中的 Token
	w = serve(r, "/me?token="+member, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), errorx.ErrUnauthorized.Msg)

	w = serve(r, "/ws?token="+member, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	r, tokens := newEngine(t)
	member, err := tokens.Generate(1)
	require.NoError(t, err)
	admin, err := tokens.Generate(2)
	require.NoError(t, err)

	w := serve(r, "/admin", "Bearer "+member)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1007`)
	assert.Contains(t, w.Body.String(), errorx.ErrForbidden.Msg)

	w = serve(r, "/admin", "Bearer "+admin)
	assert.Equal(t, http.StatusOK, w.Code)
}
