package middleware

import (
	"github.com/Min-owo17/Mysic/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureHeaders 设置安全响应头，按配置将 HTTP 跳转到 HTTPS
func SecureHeaders(conf *config.SecureConfig) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求重复创建
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          conf.SSLRedirect,
		SSLHost:              conf.SSLHost,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		IsDevelopment:        conf.IsDev,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:           stsSeconds(conf.SSLRedirect),
		STSIncludeSubdomains: conf.SSLRedirect,
	})

	return func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			// 已写入重定向或拒绝响应，终止后续处理
			zap.L().Debug("secure middleware rejected request", zap.Error(err))
			c.Abort()
			return
		}

		// 已重定向则不再继续
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	}
}

func stsSeconds(enabled bool) int64 {
	if enabled {
		return 31536000
	}
	return 0
}
