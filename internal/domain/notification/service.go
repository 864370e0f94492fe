package notification

// Service 领域服务（纯业务逻辑）
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// Validate 校验通知必填字段，缺失时返回 *ValidationError
func (s *Service) Validate(n *Notification) error {
	var missing []string
	if n.Token == "" {
		missing = append(missing, "token")
	}
	if n.Title == "" {
		missing = append(missing, "title")
	}
	if n.Body == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// NewDeliveryRecord 根据一次投递尝试生成投递记录
func (s *Service) NewDeliveryRecord(n *Notification, tokenHash, provider string, receipt *Receipt, sendErr error, latencyMs int64) *DeliveryRecord {
	record := &DeliveryRecord{
		ID:        n.ID,
		TokenHash: tokenHash,
		Title:     n.Title,
		Provider:  provider,
		Status:    StatusDelivered,
		LatencyMs: latencyMs,
		CreatedAt: n.CreatedAt,
	}
	if receipt != nil {
		record.MessageID = receipt.MessageID
	}
	if sendErr != nil {
		record.Status = StatusFailed
		record.Error = sendErr.Error()
	}
	return record
}
