package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("ENV", "")

		cfg := NewConfigFromEnv()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.False(t, cfg.AddSource)
	})

	t.Run("custom config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENV", "")

		cfg := NewConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("development mode", func(t *testing.T) {
		t.Setenv("ENV", "development")
		t.Setenv("LOG_LEVEL", "error") // 应该被覆盖

		cfg := NewConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.True(t, cfg.AddSource)
	})
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		expected     bool
	}{
		{"true value", "true", false, true},
		{"false value", "false", true, false},
		{"invalid value", "invalid", true, true},
		{"missing env", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.expected, getEnvBool("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&Config{Level: "debug", Format: "json"}, &buf)
	defer Init(&Config{Level: "info", Format: "console"})

	assert.True(t, IsDebugMode())

	NewModuleLogger("test", "component").Debug("test message", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"test message"`)
	assert.Contains(t, out, `"service":"chatapp-backend"`)
	assert.Contains(t, out, `"module":"test"`)
	assert.Contains(t, out, `"component":"component"`)
}

func TestInitWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&Config{Level: "warn", Format: "console"}, &buf)
	defer Init(&Config{Level: "info", Format: "console"})

	GetLogger().Info("hidden")
	GetLogger().Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogCtxFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, LogCtxFromContext(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithNotificationID(ctx, "n-1")

	attrs := LogCtxFromContext(ctx)
	require.Len(t, attrs, 2)
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("with ctx", attrs...)
	assert.True(t, strings.Contains(buf.String(), "request_id=req-1"))
	assert.True(t, strings.Contains(buf.String(), "notification_id=n-1"))
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "", RedactToken(""))

	a := RedactToken("abc123")
	assert.True(t, strings.HasPrefix(a, "sha256:"))
	assert.Len(t, a, len("sha256:")+12)
	assert.NotContains(t, a, "abc123")
	assert.Equal(t, a, RedactToken("abc123"), "同一令牌哈希应稳定")
	assert.NotEqual(t, a, RedactToken("abc124"))
}
