package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Push      PushConfig      `yaml:"push"`
	Storage   StorageConfig   `yaml:"storage"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort        string        `yaml:"http_port" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// PushConfig 推送服务配置
type PushConfig struct {
	// Provider 推送实现：log（模拟）、fcm、websocket
	Provider string `yaml:"provider" validate:"oneof=log fcm websocket"`
	// Timeout 单次推送调用的超时时间
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	// CredentialsFile Firebase 服务账号 JSON 路径，留空时由 SDK 自行查找默认凭据
	CredentialsFile string `yaml:"credentials_file"`
	ProjectID       string `yaml:"project_id"`
}

// StorageConfig 投递记录存储配置
type StorageConfig struct {
	Driver     string `yaml:"driver" validate:"oneof=memory sqlite redis"`
	SQLitePath string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	RedisURL   string `yaml:"redis_url" validate:"required_if=Driver redis"`
	// MaxRecords 最多保留的记录数
	MaxRecords int `yaml:"max_records" validate:"gt=0"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size" validate:"gt=0"`
	WriteBufferSize int `yaml:"write_buffer_size" validate:"gt=0"`
	// SendQueueSize 每个连接的待发送消息队列长度
	SendQueueSize int `yaml:"send_queue_size" validate:"gt=0"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" validate:"min=1"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        ":3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Push: PushConfig{
			Provider: "log",
			Timeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     "memory",
			SQLitePath: filepath.Join(GetDataDir(), "chatapp.db"),
			MaxRecords: 1000,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			SendQueueSize:   16,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// NewConfig 加载配置：默认值 -> YAML 文件 -> .env -> 环境变量，并做校验
func NewConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()

	if path := configFilePath(); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation of config failed: %w", err)
	}
	return nil
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewPushConfig 创建推送配置
func NewPushConfig(cfg *Config) *PushConfig {
	return &cfg.Push
}

// NewStorageConfig 创建存储配置
func NewStorageConfig(cfg *Config) *StorageConfig {
	return &cfg.Storage
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}

// NewCORSConfig 创建跨域配置
func NewCORSConfig(cfg *Config) *CORSConfig {
	return &cfg.CORS
}
