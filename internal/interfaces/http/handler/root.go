package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler 存活检查
type RootHandler struct{}

// NewRootHandler 创建存活检查处理器
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Index 服务运行确认
// @Summary 服务状态
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *RootHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Chat App Backend is running!")
}

// Health 健康检查
// @Summary 健康检查
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *RootHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
