// @title Chat App Push API
// @version 1.0
// @description 推送通知中转服务
// @host localhost:3000
// @BasePath /
// @schemes http
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/chatapp/backend/internal/infrastructure/config"
	applog "github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/infrastructure/singleton"
	"github.com/chatapp/backend/internal/wire"
)

func main() {
	// 初始化日志系统
	applog.Init(nil)

	// 加载配置获取端口
	cfg, err := config.NewConfig()
	if err != nil {
		applog.GetLogger().Error("Invalid configuration",
			"error", err,
		)
		os.Exit(1)
	}

	// 单例锁检查：尝试独占端口
	listener, err := singleton.CheckAndLock(cfg.Server.HTTPPort)
	if err != nil {
		applog.GetLogger().Error("Failed to acquire port",
			"port", cfg.Server.HTTPPort,
			"error", err,
		)
		os.Exit(1)
	}
	if listener == nil {
		applog.GetLogger().Info("Another instance is already running, exiting",
			"port", cfg.Server.HTTPPort,
		)
		os.Exit(0)
	}

	// Wire 自动生成的初始化函数
	app, cleanup, err := wire.InitializeAll(cfg)
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		_ = listener.Close()
		os.Exit(1)
	}
	defer cleanup()

	// 启动所有服务
	if err := app.Start(listener); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		cleanup()
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		applog.GetLogger().Info("Shutting down application...", "signal", sig.String())
	case err := <-app.Errors():
		applog.GetLogger().Error("HTTP server stopped unexpectedly", "error", err)
		exitCode = 1
	}

	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")

	if exitCode != 0 {
		cleanup()
		os.Exit(exitCode)
	}
}
