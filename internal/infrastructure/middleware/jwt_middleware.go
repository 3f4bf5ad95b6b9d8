// Package middleware 提供 gin 中间件：鉴权、管理员校验与安全响应头
package middleware

import (
	"errors"
	"strings"

	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"
	"github.com/Min-owo17/Mysic/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

const (
	// CtxUserKey 当前用户在 gin.Context 中的 key
	CtxUserKey = "current_user"
	// CtxUserIDKey 当前用户 ID 在 gin.Context 中的 key
	CtxUserIDKey = "user_id"
)

// UserLoader 按 ID 加载可登录的用户，由 auth 服务实现
type UserLoader interface {
	LoadActiveUser(userID uint) (*model.User, error)
}

// Authenticator 校验 Bearer Token 并加载当前用户
type Authenticator struct {
	tokens *jwt.Manager
	users  UserLoader
}

// NewAuthenticator 构造函数
func NewAuthenticator(tokens *jwt.Manager, users UserLoader) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

var (
	errInvalidScheme = errorx.New(errorx.CodeUnauthorized, "Token 格式错误，请使用 Bearer Token")
	errInvalidToken  = errorx.New(errorx.CodeUnauthorized, "Token 已过期或无效，请重新登录")
)

func abort(c *gin.Context, err *errorx.CodeError) {
	c.AbortWithStatusJSON(errorx.HTTPStatus(err.Code), gin.H{
		"code": err.Code,
		"msg":  err.Msg,
		"data": nil,
	})
}

// bearerToken 从 Authorization 头读取 Token
// allowQuery 为 true 时也接受 ?token=，浏览器的 WebSocket 无法设置请求头
func bearerToken(c *gin.Context, allowQuery bool) (string, *errorx.CodeError) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, nil
			}
		}
		return "", errorx.ErrUnauthorized
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errInvalidScheme
	}
	return parts[1], nil
}

func (a *Authenticator) handle(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, tokenErr := bearerToken(c, allowQuery)
		if tokenErr != nil {
			abort(c, tokenErr)
			return
		}
		userID, err := a.tokens.Parse(token)
		if err != nil {
			abort(c, errInvalidToken)
			return
		}
		user, err := a.users.LoadActiveUser(userID)
		if err != nil {
			var codeErr *errorx.CodeError
			if errors.As(err, &codeErr) && codeErr.Code == errorx.CodeUnauthorized {
				abort(c, codeErr)
				return
			}
			abort(c, errorx.ErrServerBusy)
			return
		}

		c.Set(CtxUserKey, user)
		c.Set(CtxUserIDKey, user.ID)
		c.Next()
	}
}

// JWTAuth 需要登录的接口
func (a *Authenticator) JWTAuth() gin.HandlerFunc {
	return a.handle(false)
}

// WsJWTAuth WebSocket 握手，Token 可放在 query 参数中
func (a *Authenticator) WsJWTAuth() gin.HandlerFunc {
	return a.handle(true)
}

// AdminOnly 必须在 JWTAuth 之后使用
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abort(c, errorx.ErrUnauthorized)
			return
		}
		if !user.IsAdmin {
			abort(c, errorx.ErrForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser 当前登录用户，未经过鉴权时返回 nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// CurrentUserID 当前登录用户 ID，未登录返回 0
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(CtxUserIDKey)
}
