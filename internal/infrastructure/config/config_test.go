package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清空所有会影响配置的环境变量
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigFile, EnvHTTPPort, EnvPushProvider, EnvPushTimeout,
		EnvCredentialsFile, EnvGoogleCredential, EnvProjectID,
		EnvStorageDriver, EnvSQLitePath, EnvRedisURL, EnvDeliveryLogLimit, EnvCORSOrigins,
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.HTTPPort)
	assert.Equal(t, "log", cfg.Push.Provider)
	assert.Equal(t, 10*time.Second, cfg.Push.Timeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 1000, cfg.Storage.MaxRecords)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestNewConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHTTPPort, "8080")
	t.Setenv(EnvPushProvider, "WebSocket")
	t.Setenv(EnvPushTimeout, "3s")
	t.Setenv(EnvStorageDriver, "sqlite")
	t.Setenv(EnvSQLitePath, "/tmp/test.db")
	t.Setenv(EnvDeliveryLogLimit, "50")
	t.Setenv(EnvCORSOrigins, "https://a.example, https://b.example")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "websocket", cfg.Push.Provider)
	assert.Equal(t, 3*time.Second, cfg.Push.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 50, cfg.Storage.MaxRecords)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestNewConfig_CredentialsFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGoogleCredential, "/secrets/google.json")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "/secrets/google.json", cfg.Push.CredentialsFile)

	t.Setenv(EnvCredentialsFile, "/secrets/firebase.json")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "/secrets/firebase.json", cfg.Push.CredentialsFile, "显式配置优先")
}

func TestNewConfig_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: ":9000"
  shutdown_timeout: 2s
push:
  provider: fcm
  timeout: 5s
  project_id: demo-project
storage:
  driver: redis
  redis_url: redis://localhost:6379/0
  max_records: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout, "未出现在文件中的字段保持默认值")
	assert.Equal(t, "fcm", cfg.Push.Provider)
	assert.Equal(t, 5*time.Second, cfg.Push.Timeout)
	assert.Equal(t, "demo-project", cfg.Push.ProjectID)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Storage.MaxRecords)

	// 环境变量覆盖文件
	t.Setenv(EnvHTTPPort, "9100")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.HTTPPort)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"未知推送实现", EnvPushProvider, "carrier-pigeon"},
		{"未知存储驱动", EnvStorageDriver, "mongo"},
		{"非法超时", EnvPushTimeout, "soon"},
		{"非正超时", EnvPushTimeout, "0s"},
		{"非法记录上限", EnvDeliveryLogLimit, "many"},
		{"redis 缺少地址", EnvStorageDriver, "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNormalizePort(t *testing.T) {
	assert.Equal(t, ":3000", normalizePort("3000"))
	assert.Equal(t, ":3000", normalizePort(":3000"))
	assert.Equal(t, "127.0.0.1:3000", normalizePort("127.0.0.1:3000"))
}
