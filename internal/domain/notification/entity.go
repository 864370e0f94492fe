package notification

import "time"

// Notification 推送通知实体（单次请求内有效，不落库）
type Notification struct {
	ID        string
	Token     string
	Title     string
	Body      string
	CreatedAt time.Time
}

// Receipt 推送服务返回的投递回执
type Receipt struct {
	MessageID string
	Provider  string
	SentAt    time.Time
}

// Status 投递状态
type Status string

const (
	// StatusDelivered 已投递
	StatusDelivered Status = "delivered"
	// StatusFailed 投递失败
	StatusFailed Status = "failed"
)

// DeliveryRecord 投递记录
// 只保存设备令牌的哈希，不保存原始令牌和正文
type DeliveryRecord struct {
	ID        string
	TokenHash string
	Title     string
	Provider  string
	Status    Status
	MessageID string
	Error     string
	LatencyMs int64
	CreatedAt time.Time
}
