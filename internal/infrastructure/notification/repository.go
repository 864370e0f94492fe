package notification

import (
	"context"
	"sync"

	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
)

// MemoryRepository 内存仓储实现，保留最近 maxRecords 条记录
type MemoryRepository struct {
	mu         sync.RWMutex
	items      []*notification.DeliveryRecord // 按写入顺序，最旧在前
	maxRecords int
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository(cfg *config.StorageConfig) *MemoryRepository {
	return &MemoryRepository{
		items:      make([]*notification.DeliveryRecord, 0, cfg.MaxRecords),
		maxRecords: cfg.MaxRecords,
	}
}

// Save 保存投递记录
func (r *MemoryRepository) Save(_ context.Context, record *notification.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	r.items = append(r.items, &copied)
	if over := len(r.items) - r.maxRecords; over > 0 {
		r.items = append(r.items[:0], r.items[over:]...)
	}
	return nil
}

// FindRecent 返回最近的记录，最新在前
func (r *MemoryRepository) FindRecent(_ context.Context, limit int) ([]*notification.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.items) {
		limit = len(r.items)
	}
	result := make([]*notification.DeliveryRecord, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(result) < limit; i-- {
		copied := *r.items[i]
		result = append(result, &copied)
	}
	return result, nil
}

// 编译时检查接口实现
var _ notification.DeliveryRepository = (*MemoryRepository)(nil)
