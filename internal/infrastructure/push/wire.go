package push

import (
	"context"
	"fmt"
	"time"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/infrastructure/websocket"
	"github.com/google/wire"
)

// ProviderSet 推送基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	ProvidePushProvider,
)

// ProvidePushProvider 按配置构造推送实现（进程内只构造一次）
func ProvidePushProvider(cfg *config.PushConfig, hub *websocket.Hub) (appNotification.Provider, error) {
	logger := log.NewModuleLogger("push", "factory")

	switch cfg.Provider {
	case "fcm":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		provider, err := NewFCMProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using firebase cloud messaging", "project_id", cfg.ProjectID)
		return provider, nil

	case "websocket":
		logger.Info("Using websocket push")
		return NewWebSocketProvider(hub), nil

	case "log", "":
		logger.Warn("Using simulated push provider, notifications are only logged")
		return NewLogProvider(), nil

	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Provider)
	}
}
