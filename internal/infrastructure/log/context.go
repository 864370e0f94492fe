package log

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	// RequestContextID HTTP 请求 ID
	RequestContextID contextKey = "request_id"

	// NotificationContextID 通知 ID
	NotificationContextID contextKey = "notification_id"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithNotificationID 在上下文中添加通知 ID
func WithNotificationID(ctx context.Context, notificationID string) context.Context {
	return context.WithValue(ctx, NotificationContextID, notificationID)
}

// RequestIDFromContext 取出请求 ID，不存在时返回空串
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestContextID).(string)
	return id
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []any {
	var attrs []any

	if requestID, ok := ctx.Value(RequestContextID).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String(string(RequestContextID), requestID))
	}
	if notificationID, ok := ctx.Value(NotificationContextID).(string); ok && notificationID != "" {
		attrs = append(attrs, slog.String(string(NotificationContextID), notificationID))
	}

	return attrs
}
