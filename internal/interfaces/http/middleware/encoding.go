package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/chatapp/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// MaxBodyBytes 请求体大小上限
const MaxBodyBytes = 1 << 20

// EnsureUTF8Body 限制请求体大小，并将非 UTF-8 的 JSON 请求体按 GBK 解码为 UTF-8
// 中文 Windows 下的 curl 默认以 GBK 发送，通知标题和正文因此可能不是 UTF-8
func EnsureUTF8Body() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		if !isJSON(c.Request) {
			c.Next()
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.AbortWithError(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			response.AbortWithError(c, http.StatusBadRequest, "Missing required fields")
			return
		}

		body := raw
		if !utf8.Valid(raw) {
			if decoded, err := decodeGBK(raw); err == nil && utf8.Valid(decoded) {
				body = decoded
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))

		c.Next()
	}
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(strings.ToLower(ct), "application/json")
}

func decodeGBK(b []byte) ([]byte, error) {
	return io.ReadAll(transform.NewReader(bytes.NewReader(b), simplifiedchinese.GBK.NewDecoder()))
}
