package application

import (
	"github.com/chatapp/backend/internal/application/notification"
	"github.com/google/wire"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	notification.ProviderSet,
)
