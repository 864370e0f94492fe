package push

import (
	"context"
	"log/slog"
	"time"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/google/uuid"
)

// LogProvider 模拟推送：只记录日志，始终成功
// 用于本地开发和尚未配置 Firebase 凭据的环境
type LogProvider struct {
	logger *slog.Logger
}

// NewLogProvider 创建模拟推送实现
func NewLogProvider() *LogProvider {
	return &LogProvider{logger: log.NewModuleLogger("push", "log")}
}

// Name 实现 Provider 接口
func (p *LogProvider) Name() string {
	return "log"
}

// Send 实现 Provider 接口
func (p *LogProvider) Send(ctx context.Context, n *notification.Notification) (*notification.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Info("Simulated push delivery",
		append(log.LogCtxFromContext(ctx),
			"token", log.RedactToken(n.Token),
			"title", n.Title,
		)...,
	)

	return &notification.Receipt{
		MessageID: "simulated-" + uuid.New().String(),
		Provider:  p.Name(),
		SentAt:    time.Now(),
	}, nil
}

// 编译时检查接口实现
var _ appNotification.Provider = (*LogProvider)(nil)
