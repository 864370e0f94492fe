package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	infraWS "github.com/chatapp/backend/internal/infrastructure/websocket"
	"github.com/chatapp/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler 设备 WebSocket 接入
type WebSocketHandler struct {
	hub      *infraWS.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器
func NewWebSocketHandler(hub *infraWS.Hub, cfg *config.WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // 来源限制由 CORS 配置负责
			},
		},
		logger: log.NewModuleLogger("http", "websocket"),
	}
}

// Connect 以设备令牌注册 WebSocket 连接
// @Summary 设备 WebSocket 连接
// @Param token query string true "设备令牌"
// @Router /ws [get]
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection",
			append(log.LogCtxFromContext(c.Request.Context()), "error", err)...,
		)
		return
	}

	conn := h.hub.NewConnection(token)
	h.hub.Register(conn)
	h.logger.Info("Device connected", "token", log.RedactToken(token))

	go h.writePump(ws, conn)
	go h.readPump(ws, conn)
}

// readPump 只处理控制帧，连接断开时注销
func (h *WebSocketHandler) readPump(ws *websocket.Conn, conn *infraWS.Connection) {
	defer func() {
		h.hub.Unregister(conn)
		_ = ws.Close()
		h.logger.Info("Device disconnected", "token", log.RedactToken(conn.Token))
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Connection read error", "token", log.RedactToken(conn.Token), "error", err)
			}
			return
		}
	}
}

// writePump 发送队列中的消息，并定期 Ping
func (h *WebSocketHandler) writePump(ws *websocket.Conn, conn *infraWS.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
