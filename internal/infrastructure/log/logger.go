package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	debugMode     bool
	initMu        sync.Mutex
)

// Init 初始化日志系统
func Init(cfg *Config) {
	InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter 初始化日志系统并指定输出目标（测试中用于捕获输出）
func InitWithWriter(cfg *Config, out io.Writer) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var logHandler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		logHandler = slog.NewJSONHandler(out, opts)
	} else {
		logHandler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(logHandler.WithAttrs([]slog.Attr{
		slog.String("service", "chatapp-backend"),
	}))

	initMu.Lock()
	defaultLogger = logger
	debugMode = strings.ToLower(cfg.Level) == "debug"
	initMu.Unlock()

	slog.SetDefault(logger)
}

// GetLogger 获取默认 logger
func GetLogger() *slog.Logger {
	initMu.Lock()
	logger := defaultLogger
	initMu.Unlock()

	if logger == nil {
		Init(nil)
		return GetLogger()
	}
	return logger
}

// With 创建带有额外字段的 logger
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// NewModuleLogger 为特定模块创建 logger
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// IsDebugMode 检查是否为调试模式
func IsDebugMode() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return debugMode
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
