package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken Token 无效或已过期
var ErrInvalidToken = errors.New("invalid token")

// Manager 负责签发和校验 Access Token
// 由 main 根据配置构造后注入，不使用全局变量
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewManager 创建 Token 管理器
// algorithm 支持 HS256/HS384/HS512，为空时使用 HS256
func NewManager(secret, algorithm string, expiry time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &Manager{
		secret: []byte(secret),
		method: method,
		expiry: expiry,
		issuer: "mysic",
		now:    time.Now,
	}, nil
}

// Generate 签发 Access Token，sub 为用户 ID
func (m *Manager) Generate(userID uint) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    m.issuer,
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// Parse 校验 Token 并返回其中的用户 ID
func (m *Manager) Parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Expiry 返回 Token 有效期
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}
