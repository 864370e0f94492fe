package notification

import "context"

// DeliveryRepository 投递记录仓储接口
type DeliveryRepository interface {
	Save(ctx context.Context, record *DeliveryRecord) error
	// FindRecent 按创建时间倒序返回最近的记录
	FindRecent(ctx context.Context, limit int) ([]*DeliveryRecord, error)
}
