package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/interfaces/http/handler"
	"github.com/chatapp/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/chatapp/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router *gin.Engine
	cfg    *config.ServerConfig
	server *http.Server
	logger *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	corsCfg *config.CORSConfig,
	rootHandler *handler.RootHandler,
	notificationHandler *handler.NotificationHandler,
	wsHandler *handler.WebSocketHandler,
) *HTTPServer {
	if !log.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORS(corsCfg),
		middleware.EnsureUTF8Body(),
	)

	registerRoutes(router, rootHandler, notificationHandler, wsHandler)

	return &HTTPServer{
		router: router,
		cfg:    cfg,
		server: &http.Server{
			Addr:         cfg.HTTPPort,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: log.NewModuleLogger("http", "server"),
	}
}

func registerRoutes(
	router *gin.Engine,
	rootHandler *handler.RootHandler,
	notificationHandler *handler.NotificationHandler,
	wsHandler *handler.WebSocketHandler,
) {
	router.GET("/", rootHandler.Index)
	router.GET("/health", rootHandler.Health)

	notifications := router.Group("/notifications")
	{
		notifications.POST("/send", notificationHandler.Send)
		notifications.GET("/deliveries", notificationHandler.Deliveries)
	}

	// 兼容旧客户端路径
	router.POST("/api/notifications/send", notificationHandler.Send)

	router.GET("/ws", wsHandler.Connect)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Addr 返回配置的监听地址
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Handler 返回路由（测试用）
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 在配置的端口上启动服务器（阻塞，正常关闭时返回 nil）
func (s *HTTPServer) Start() error {
	listener, err := net.Listen("tcp", s.cfg.HTTPPort)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve 在已有的 listener 上提供服务（阻塞，正常关闭时返回 nil）
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.logger.Info("HTTP server starting",
		"addr", listener.Addr().String(),
	)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Stop 在配置的超时内优雅关闭
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
