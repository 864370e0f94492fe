package infrastructure

import (
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/eventbus"
	"github.com/chatapp/backend/internal/infrastructure/push"
	"github.com/chatapp/backend/internal/infrastructure/storage"
	"github.com/chatapp/backend/internal/infrastructure/websocket"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	eventbus.ProviderSet,
	websocket.ProviderSet,
	storage.ProviderSet,
	push.ProviderSet,
)
