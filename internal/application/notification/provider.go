package notification

import (
	"context"

	"github.com/chatapp/backend/internal/domain/notification"
)

// Provider 推送服务接口（定义在 application 层）
// 启动时构造一次，注入到 Service
type Provider interface {
	// Name 推送实现名称，用于日志和投递记录
	Name() string
	// Send 投递一条通知，可能因等待网络而阻塞，须遵守 ctx 的取消
	Send(ctx context.Context, n *notification.Notification) (*notification.Receipt, error)
}
