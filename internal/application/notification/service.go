package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chatapp/backend/internal/domain/events"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/google/uuid"
)

// Service 应用服务（用例编排）
type Service struct {
	domainSvc *notification.Service
	provider  Provider
	bus       events.EventBus
	timeout   time.Duration
	logger    *slog.Logger
}

// NewService 创建应用服务
func NewService(
	domainSvc *notification.Service,
	provider Provider,
	bus events.EventBus,
	pushCfg *config.PushConfig,
) *Service {
	return &Service{
		domainSvc: domainSvc,
		provider:  provider,
		bus:       bus,
		timeout:   pushCfg.Timeout,
		logger:    log.NewModuleLogger("notification", "service"),
	}
}

// Send 校验并投递一条通知（单次尝试，不重试）
// 校验失败返回 *notification.ValidationError，投递失败返回 *notification.DeliveryError
func (s *Service) Send(ctx context.Context, dto *SendNotificationDTO) (*SendResultDTO, error) {
	notif := &notification.Notification{
		ID:        uuid.New().String(),
		Token:     dto.Token,
		Title:     dto.Title,
		Body:      dto.Body,
		CreatedAt: time.Now(),
	}

	if err := s.domainSvc.Validate(notif); err != nil {
		s.logger.Warn("Rejected notification request",
			append(log.LogCtxFromContext(ctx), "error", err)...,
		)
		return nil, err
	}

	ctx = log.WithNotificationID(ctx, notif.ID)
	logger := s.logger.With(log.LogCtxFromContext(ctx)...)
	tokenHash := log.RedactToken(notif.Token)
	providerName := s.provider.Name()

	logger.Info("Sending notification",
		"token", tokenHash,
		"title", notif.Title,
		"body_length", len(notif.Body),
		"provider", providerName,
	)

	start := time.Now()
	receipt, err := s.dispatch(ctx, notif)
	latency := time.Since(start)

	if err != nil {
		err = &notification.DeliveryError{Provider: providerName, Err: err}
		logger.Error("Failed to send notification",
			"token", tokenHash,
			"provider", providerName,
			"latency", latency,
			"error", err,
		)
	} else {
		logger.Info("Notification sent",
			"token", tokenHash,
			"provider", providerName,
			"message_id", receipt.MessageID,
			"latency", latency,
		)
	}

	s.bus.Publish(&events.DispatchEvent{
		Notification: notif,
		TokenHash:    tokenHash,
		Provider:     providerName,
		Receipt:      receipt,
		Err:          err,
		Latency:      latency,
		EventTime:    time.Now(),
	})

	if err != nil {
		return nil, err
	}

	return &SendResultDTO{
		ID:        notif.ID,
		MessageID: receipt.MessageID,
		Provider:  providerName,
	}, nil
}

type dispatchResult struct {
	receipt *notification.Receipt
	err     error
}

// dispatch 在超时约束下调用推送服务
// 推送服务不响应取消时也按超时返回；推送服务 panic 转为错误
func (s *Service) dispatch(ctx context.Context, n *notification.Notification) (*notification.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan dispatchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- dispatchResult{err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()
		receipt, err := s.provider.Send(ctx, n)
		done <- dispatchResult{receipt: receipt, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && res.receipt == nil {
			return nil, fmt.Errorf("provider returned no receipt")
		}
		return res.receipt, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
