package middleware

import (
	"log/slog"
	"time"

	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/gin-gonic/gin"
)

// RequestLogger 访问日志，每个请求一条记录
func RequestLogger() gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "access")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := append(log.LogCtxFromContext(c.Request.Context()),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)

		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "HTTP request", attrs...)
	}
}
