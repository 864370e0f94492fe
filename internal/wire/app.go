package wire

import (
	"log/slog"
	"net"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/events"
	applog "github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/infrastructure/websocket"
	"github.com/chatapp/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer      *interfaces.HTTPServer
	wsHub           *websocket.Hub
	eventBus        events.EventBus
	deliveryService *appNotification.DeliveryService
	logger          *slog.Logger

	unsubscribe func()
	serveErr    chan error
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	wsHub *websocket.Hub,
	eventBus events.EventBus,
	deliveryService *appNotification.DeliveryService,
) *App {
	return &App{
		HTTPServer:      httpServer,
		wsHub:           wsHub,
		eventBus:        eventBus,
		deliveryService: deliveryService,
		logger:          applog.NewModuleLogger("app", "main"),
		serveErr:        make(chan error, 1),
	}
}

// Start 启动所有服务，listener 为 nil 时按配置端口监听
func (a *App) Start(listener net.Listener) error {
	a.logger.Info("Starting chat app backend")

	a.wsHub.Start()

	// 投递记录订阅推送事件
	a.unsubscribe = a.eventBus.Subscribe(events.NotificationDispatched, a.deliveryService)

	go func() {
		serve := a.HTTPServer.Start
		if listener != nil {
			serve = func() error { return a.HTTPServer.Serve(listener) }
		}
		if err := serve(); err != nil {
			a.logger.Error("HTTP server error",
				"error", err,
			)
			a.serveErr <- err
		}
	}()

	a.logger.Info("Chat app backend started")
	return nil
}

// Errors HTTP 服务异常退出时收到错误（例如端口被占用）
func (a *App) Errors() <-chan error {
	return a.serveErr
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping chat app backend")

	var stopErr error
	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		stopErr = err
	}

	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	// Close 会等待已发布的事件处理完成
	a.eventBus.Close()
	a.logger.Info("Event bus closed")

	a.wsHub.Stop()

	a.logger.Info("Chat app backend stopped")
	return stopErr
}
