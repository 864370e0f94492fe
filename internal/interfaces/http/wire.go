package http

import (
	"github.com/chatapp/backend/internal/interfaces/http/handler"
	"github.com/google/wire"
)

// ProviderSet HTTP 接口层 ProviderSet
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	NewServer,
)
