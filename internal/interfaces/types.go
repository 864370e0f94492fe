package interfaces

import (
	"github.com/chatapp/backend/internal/interfaces/http"
)

// HTTPServer HTTP 服务器类型别名
type HTTPServer = http.HTTPServer
