package notification

import "github.com/google/wire"

// ProviderSet 通知应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	NewDeliveryService,
	// 注意：Provider 接口由 infrastructure/push 按配置提供
)
