package events

import (
	"time"

	"github.com/chatapp/backend/internal/domain/notification"
)

// DispatchEvent 推送尝试结束事件
type DispatchEvent struct {
	Notification *notification.Notification
	// TokenHash 设备令牌哈希，订阅者不应接触原始令牌
	TokenHash string
	Provider  string
	Receipt   *notification.Receipt
	// Err 投递失败原因，成功时为 nil
	Err       error
	Latency   time.Duration
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *DispatchEvent) Type() EventType {
	return NotificationDispatched
}

// Timestamp 实现 Event 接口
func (e *DispatchEvent) Timestamp() time.Time {
	return e.EventTime
}
