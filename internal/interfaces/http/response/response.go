package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 成功响应结构
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success 成功响应
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{Error: message})
}

// AbortWithError 错误响应并中止后续处理
func AbortWithError(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{Error: message})
}
