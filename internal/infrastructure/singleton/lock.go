package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

// HealthCheckTimeout 健康检查超时时间
const HealthCheckTimeout = 2 * time.Second

// ErrPortBusy 端口被其他进程占用且不是健康的推送服务
var ErrPortBusy = errors.New("port is in use by an unhealthy or foreign process")

// CheckAndLock 尝试独占监听端口
// 端口可用时返回 listener，由 HTTP 服务器直接使用
// 已有健康实例在运行时返回 nil listener 和 nil error（调用者应退出）
func CheckAndLock(port string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if !isAddrInUse(err) {
		return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
	}

	if isInstanceRunning(port) {
		return nil, nil
	}
	return nil, fmt.Errorf("%s: %w", port, ErrPortBusy)
}

// isAddrInUse 检查错误是否是地址已在使用
func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows: WSAEADDRINUSE (10048)
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == 10048 {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}

// isInstanceRunning 检查端口上是否是健康的推送服务实例
func isInstanceRunning(port string) bool {
	resp, err := resty.New().
		SetTimeout(HealthCheckTimeout).
		R().
		Get("http://" + probeAddr(port) + "/health")
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// probeAddr 将 ":3000" 或 "0.0.0.0:3000" 转为可访问的本机地址
func probeAddr(port string) string {
	host, p, err := net.SplitHostPort(port)
	if err != nil {
		return "localhost" + port
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, p)
}
