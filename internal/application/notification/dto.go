package notification

// SendNotificationDTO 推送通知请求
type SendNotificationDTO struct {
	Token string `json:"token" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// SendResultDTO 推送结果（仅供内部和日志使用，不返回给调用方）
type SendResultDTO struct {
	ID        string
	MessageID string
	Provider  string
}

// DeliveryDTO 投递记录响应
type DeliveryDTO struct {
	ID        string `json:"id"`
	TokenHash string `json:"tokenHash"`
	Title     string `json:"title"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	LatencyMs int64  `json:"latencyMs"`
	CreatedAt string `json:"createdAt"`
}
