package middleware

import (
	"time"

	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 跨域中间件
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return cors.New(corsCfg)
		}
	}
	corsCfg.AllowOrigins = cfg.AllowOrigins

	return cors.New(corsCfg)
}
