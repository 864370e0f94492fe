package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
)

// Hub WebSocket 连接管理中心，按设备令牌分组
type Hub struct {
	devices    map[string]map[*Connection]bool
	register   chan *Connection
	unregister chan *Connection
	quit       chan struct{}
	stopOnce   sync.Once
	queueSize  int
	mu         sync.RWMutex
	logger     *slog.Logger
}

// Connection 一个已注册的设备连接
type Connection struct {
	Token string
	Send  chan []byte
}

// NewHub 创建 Hub
func NewHub(cfg *config.WebSocketConfig) *Hub {
	return &Hub{
		devices:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		quit:       make(chan struct{}),
		queueSize:  cfg.SendQueueSize,
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// NewConnection 创建带发送队列的连接
func (h *Hub) NewConnection(token string) *Connection {
	return &Connection{
		Token: token,
		Send:  make(chan []byte, h.queueSize),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.devices[conn.Token] == nil {
				h.devices[conn.Token] = make(map[*Connection]bool)
			}
			h.devices[conn.Token][conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.devices {
				for conn := range conns {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove 需持有写锁
func (h *Hub) remove(conn *Connection) {
	conns, ok := h.devices[conn.Token]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.devices, conn.Token)
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接的发送队列
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
		close(conn.Send)
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// SendToDevice 向设备的所有在线连接投递消息，返回成功入队的连接数
// 发送队列已满的连接被视为失效并注销
func (h *Hub) SendToDevice(token string, data interface{}) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}

	var stale []*Connection
	delivered := 0

	h.mu.RLock()
	for conn := range h.devices[token] {
		select {
		case conn.Send <- jsonData:
			delivered++
		default:
			stale = append(stale, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range stale {
		h.logger.Warn("Dropping slow connection", "token", log.RedactToken(token))
		go h.Unregister(conn)
	}

	return delivered, nil
}

// ConnectionCount 返回设备当前的在线连接数
func (h *Hub) ConnectionCount(token string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.devices[token])
}
