package config

import "github.com/google/wire"

// ProviderSet 配置 ProviderSet
// *Config 由调用方加载后作为注入器参数传入，进程内只加载一次
var ProviderSet = wire.NewSet(
	NewServerConfig,
	NewPushConfig,
	NewStorageConfig,
	NewWebSocketConfig,
	NewCORSConfig,
)
