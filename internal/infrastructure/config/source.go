package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量名
const (
	EnvConfigFile       = "CONFIG_FILE"
	EnvHTTPPort         = "PORT"
	EnvPushProvider     = "PUSH_PROVIDER"
	EnvPushTimeout      = "PUSH_TIMEOUT"
	EnvCredentialsFile  = "FIREBASE_CREDENTIALS_FILE"
	EnvGoogleCredential = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvProjectID        = "FIREBASE_PROJECT_ID"
	EnvStorageDriver    = "STORAGE_DRIVER"
	EnvSQLitePath       = "SQLITE_PATH"
	EnvRedisURL         = "REDIS_URL"
	EnvDeliveryLogLimit = "DELIVERY_LOG_LIMIT"
	EnvCORSOrigins      = "CORS_ALLOW_ORIGINS"

	// DefaultConfigFile 工作目录下自动加载的配置文件
	DefaultConfigFile = "config.yaml"
)

// loadDotEnv 加载工作目录下的 .env，不覆盖已存在的环境变量
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

func configFilePath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvHTTPPort); v != "" {
		cfg.Server.HTTPPort = normalizePort(v)
	}

	if v := os.Getenv(EnvPushProvider); v != "" {
		cfg.Push.Provider = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPushTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPushTimeout, err)
		}
		cfg.Push.Timeout = d
	}
	if v := os.Getenv(EnvCredentialsFile); v != "" {
		cfg.Push.CredentialsFile = v
	} else if v := os.Getenv(EnvGoogleCredential); v != "" && cfg.Push.CredentialsFile == "" {
		cfg.Push.CredentialsFile = v
	}
	if v := os.Getenv(EnvProjectID); v != "" {
		cfg.Push.ProjectID = v
	}

	if v := os.Getenv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv(EnvDeliveryLogLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDeliveryLogLimit, err)
		}
		cfg.Storage.MaxRecords = n
	}

	if v := os.Getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowOrigins = origins
	}

	return nil
}

// normalizePort 把 "3000" 规范为 ":3000"，已带主机或冒号的原样返回
func normalizePort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
