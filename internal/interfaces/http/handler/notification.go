package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/log"
	"github.com/chatapp/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// 对外错误文案，不暴露推送服务的内部细节
const (
	msgMissingFields   = "Missing required fields"
	msgSendFailed      = "Failed to send notification"
	msgNotificationOK  = "Notification sent"
	msgInvalidLimit    = "Invalid limit"
	msgDeliveriesError = "Failed to load deliveries"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	service         *appNotification.Service
	deliveryService *appNotification.DeliveryService
	logger          *slog.Logger
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(
	service *appNotification.Service,
	deliveryService *appNotification.DeliveryService,
) *NotificationHandler {
	return &NotificationHandler{
		service:         service,
		deliveryService: deliveryService,
		logger:          log.NewModuleLogger("http", "notification"),
	}
}

// Send 推送一条通知
// @Summary 推送通知
// @Tags 通知
// @Accept json
// @Produce json
// @Param body body notification.SendNotificationDTO true "通知内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var dto appNotification.SendNotificationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.Debug("Invalid notification request body",
			append(log.LogCtxFromContext(c.Request.Context()), "error", err)...,
		)
		response.Error(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	if _, err := h.service.Send(c.Request.Context(), &dto); err != nil {
		if errors.Is(err, notification.ErrMissingFields) {
			response.Error(c, http.StatusBadRequest, msgMissingFields)
			return
		}
		response.Error(c, http.StatusInternalServerError, msgSendFailed)
		return
	}

	response.Success(c, msgNotificationOK)
}

// Deliveries 最近的投递记录
// @Summary 查询投递记录
// @Tags 通知
// @Produce json
// @Param limit query int false "返回条数（1-100，默认 20）"
// @Success 200 {object} DeliveriesResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /notifications/deliveries [get]
func (h *NotificationHandler) Deliveries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, msgInvalidLimit)
			return
		}
		limit = n
		if limit == 0 {
			response.Error(c, http.StatusBadRequest, msgInvalidLimit)
			return
		}
	}

	deliveries, err := h.deliveryService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, appNotification.ErrInvalidLimit) {
			response.Error(c, http.StatusBadRequest, msgInvalidLimit)
			return
		}
		h.logger.Error("Failed to load deliveries",
			append(log.LogCtxFromContext(c.Request.Context()), "error", err)...,
		)
		response.Error(c, http.StatusInternalServerError, msgDeliveriesError)
		return
	}

	if deliveries == nil {
		deliveries = []*appNotification.DeliveryDTO{}
	}
	c.JSON(http.StatusOK, DeliveriesResponse{Deliveries: deliveries})
}

// DeliveriesResponse 投递记录列表
type DeliveriesResponse struct {
	Deliveries []*appNotification.DeliveryDTO `json:"deliveries"`
}
