//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/chatapp/backend/internal/application"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 用已加载的配置初始化所有服务
func InitializeAll(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		notification.ProviderSet,   // 领域层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		NewApp,
	)
	return nil, nil, nil
}
