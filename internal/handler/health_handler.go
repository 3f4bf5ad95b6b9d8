package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/redis"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler 服务信息与健康检查
type HealthHandler struct {
	appName      string
	db           *gorm.DB
	cache        redis.CacheService
	redisEnabled bool
}

// NewHealthHandler 创建健康检查处理器
// redisEnabled 为 false 时不检查缓存
func NewHealthHandler(appName string, db *gorm.DB, cache redis.CacheService, redisEnabled bool) *HealthHandler {
	return &HealthHandler{appName: appName, db: db, cache: cache, redisEnabled: redisEnabled}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	HandleSuccess(c, gin.H{
		"message": h.appName + " API",
		"status":  "running",
	})
}

// Health 数据库状态，启用时包含 Redis
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"database": "connected",
		"redis":    "disabled",
	}
	healthy := true

	if err := mysql.Ping(h.db); err != nil {
		zap.L().Error("database ping failed", zap.Error(err))
		status["database"] = "disconnected"
		healthy = false
	}

	if h.redisEnabled {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			zap.L().Error("redis ping failed", zap.Error(err))
			status["redis"] = "disconnected"
			healthy = false
		} else {
			status["redis"] = "connected"
		}
	}

	if !healthy {
		status["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, ResponseData{
			Code: errorx.CodeServerBusy,
			Msg:  "unhealthy",
			Data: status,
		})
		return
	}
	HandleSuccess(c, status)
}
