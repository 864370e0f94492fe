package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chatapp/backend/internal/domain/events"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/log"
)

// 投递记录查询条数限制
const (
	DefaultDeliveryLimit = 20
	MaxDeliveryLimit     = 100
)

// ErrInvalidLimit 查询条数超出范围
var ErrInvalidLimit = errors.New("invalid limit")

// DeliveryService 投递记录服务：订阅推送事件落库，并提供查询
type DeliveryService struct {
	repo      notification.DeliveryRepository
	domainSvc *notification.Service
	logger    *slog.Logger
}

// NewDeliveryService 创建投递记录服务
func NewDeliveryService(repo notification.DeliveryRepository, domainSvc *notification.Service) *DeliveryService {
	return &DeliveryService{
		repo:      repo,
		domainSvc: domainSvc,
		logger:    log.NewModuleLogger("notification", "delivery"),
	}
}

// HandleEvent 实现 events.Handler，保存一次推送尝试
func (s *DeliveryService) HandleEvent(event events.Event) error {
	e, ok := event.(*events.DispatchEvent)
	if !ok || e.Notification == nil {
		return nil
	}

	record := s.domainSvc.NewDeliveryRecord(
		e.Notification,
		e.TokenHash,
		e.Provider,
		e.Receipt,
		e.Err,
		e.Latency.Milliseconds(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save delivery record %s: %w", record.ID, err)
	}

	s.logger.Debug("Delivery recorded",
		"notification_id", record.ID,
		"status", record.Status,
	)
	return nil
}

// ListRecent 查询最近的投递记录，limit 为 0 时使用默认值
func (s *DeliveryService) ListRecent(ctx context.Context, limit int) ([]*DeliveryDTO, error) {
	if limit == 0 {
		limit = DefaultDeliveryLimit
	}
	if limit < 0 || limit > MaxDeliveryLimit {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidLimit, MaxDeliveryLimit)
	}

	records, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery records: %w", err)
	}

	result := make([]*DeliveryDTO, 0, len(records))
	for _, r := range records {
		result = append(result, toDeliveryDTO(r))
	}
	return result, nil
}

// toDeliveryDTO 转换为 DTO，错误详情不对外暴露
func toDeliveryDTO(r *notification.DeliveryRecord) *DeliveryDTO {
	return &DeliveryDTO{
		ID:        r.ID,
		TokenHash: r.TokenHash,
		Title:     r.Title,
		Provider:  r.Provider,
		Status:    string(r.Status),
		MessageID: r.MessageID,
		LatencyMs: r.LatencyMs,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
