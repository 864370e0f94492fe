package notification

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingFields 缺少必填字段
	ErrMissingFields = errors.New("missing required fields")
	// ErrNoActiveConnection 设备没有在线连接
	ErrNoActiveConnection = errors.New("no active connection for device")
)

// ValidationError 请求校验失败（调用方错误）
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Missing, ", "))
}

// Unwrap 使 errors.Is(err, ErrMissingFields) 成立
func (e *ValidationError) Unwrap() error {
	return ErrMissingFields
}

// DeliveryError 推送服务或网络故障
type DeliveryError struct {
	Provider string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %v", e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
