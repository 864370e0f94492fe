package push

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"google.golang.org/api/option"
)

// messagingClient 是 *messaging.Client 中用到的部分，测试时替换为假实现
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMProvider Firebase Cloud Messaging 推送实现
type FCMProvider struct {
	client messagingClient
	logger *slog.Logger
}

// NewFCMProvider 初始化 Firebase 应用并创建 Messaging 客户端（启动时调用一次）
func NewFCMProvider(ctx context.Context, cfg *config.PushConfig) (*FCMProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase messaging client: %w", err)
	}

	return newFCMProvider(client), nil
}

func newFCMProvider(client messagingClient) *FCMProvider {
	return &FCMProvider{
		client: client,
		logger: log.NewModuleLogger("push", "fcm"),
	}
}

// Name 实现 Provider 接口
func (p *FCMProvider) Name() string {
	return "fcm"
}

// Send 实现 Provider 接口
func (p *FCMProvider) Send(ctx context.Context, n *notification.Notification) (*notification.Receipt, error) {
	message := &messaging.Message{
		Token: n.Token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"notificationId": n.ID,
		},
	}

	messageID, err := p.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) {
			p.logger.Warn("Device token is no longer registered",
				append(log.LogCtxFromContext(ctx), "token", log.RedactToken(n.Token))...,
			)
		}
		return nil, fmt.Errorf("fcm send: %w", err)
	}

	return &notification.Receipt{
		MessageID: messageID,
		Provider:  p.Name(),
		SentAt:    time.Now(),
	}, nil
}

// 编译时检查接口实现
var _ appNotification.Provider = (*FCMProvider)(nil)
