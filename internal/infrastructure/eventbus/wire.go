package eventbus

import "github.com/google/wire"

// ProviderSet 事件总线 ProviderSet
var ProviderSet = wire.NewSet(
	NewEventBus,
)
