package middleware

import (
	"net/http"

	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// Recovery 捕获处理器中的 panic，返回 500 错误信封
func Recovery() gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "recovery")

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			append(log.LogCtxFromContext(c.Request.Context()),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", recovered,
			)...,
		)
		response.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}
