package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/interfaces/http/handler"
	"github.com/chatapp/backend/internal/interfaces/http/response"
	"github.com/go-resty/resty/v2"
)

// APIClient 基于 resty 的服务端客户端，直接复用接口层的请求和响应结构
type APIClient struct {
	client *resty.Client
}

// NewAPIClient 创建客户端
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &APIClient{client: client}
}

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Send 推送一条通知
func (c *APIClient) Send(dto *appNotification.SendNotificationDTO) (*response.Response, error) {
	var result response.Response
	var apiErr response.ErrorResponse

	resp, err := c.client.R().
		SetBody(dto).
		SetResult(&result).
		SetError(&apiErr).
		Post("/notifications/send")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return &result, nil
}

// Deliveries 查询最近的投递记录，limit 为 0 时使用服务端默认值
func (c *APIClient) Deliveries(limit int) ([]*appNotification.DeliveryDTO, error) {
	var result handler.DeliveriesResponse
	var apiErr response.ErrorResponse

	req := c.client.R().SetResult(&result).SetError(&apiErr)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/notifications/deliveries")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return result.Deliveries, nil
}

// HealthCheck 健康检查
func (c *APIClient) HealthCheck() error {
	resp, err := c.client.R().Get("/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode()}
	}
	return nil
}
