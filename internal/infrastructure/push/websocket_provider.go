package push

import (
	"context"
	"time"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/websocket"
)

// Message 推送给 WebSocket 客户端的消息体
type Message struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	SentAt string `json:"sentAt"`
}

// WebSocketProvider 通过在线 WebSocket 连接直接推送
type WebSocketProvider struct {
	hub *websocket.Hub
}

// NewWebSocketProvider 创建 WebSocket 推送实现
func NewWebSocketProvider(hub *websocket.Hub) *WebSocketProvider {
	return &WebSocketProvider{hub: hub}
}

// Name 实现 Provider 接口
func (p *WebSocketProvider) Name() string {
	return "websocket"
}

// Send 实现 Provider 接口，设备没有在线连接时返回 ErrNoActiveConnection
func (p *WebSocketProvider) Send(ctx context.Context, n *notification.Notification) (*notification.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	delivered, err := p.hub.SendToDevice(n.Token, &Message{
		ID:     n.ID,
		Title:  n.Title,
		Body:   n.Body,
		SentAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	if delivered == 0 {
		return nil, notification.ErrNoActiveConnection
	}

	return &notification.Receipt{
		MessageID: n.ID,
		Provider:  p.Name(),
		SentAt:    now,
	}, nil
}

// 编译时检查接口实现
var _ appNotification.Provider = (*WebSocketProvider)(nil)
