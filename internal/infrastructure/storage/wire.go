package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/log"
	infraNotification "github.com/chatapp/backend/internal/infrastructure/notification"
	"github.com/google/wire"
)

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideDeliveryRepository,
)

// ProvideDeliveryRepository 按配置选择投递记录仓储，返回的 cleanup 负责关闭底层连接
func ProvideDeliveryRepository(cfg *config.StorageConfig) (notification.DeliveryRepository, func(), error) {
	logger := log.NewModuleLogger("storage", "delivery")

	switch cfg.Driver {
	case "sqlite":
		db, err := OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewSQLiteDeliveryRepository(db, cfg.MaxRecords)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Using sqlite delivery log", "path", cfg.SQLitePath)
		return repo, func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", "error", err)
			}
		}, nil

	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis delivery log")
		return NewRedisDeliveryRepository(rdb, cfg.MaxRecords), func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Failed to close redis connection", "error", err)
			}
		}, nil

	case "memory", "":
		logger.Info("Using in-memory delivery log", "max_records", cfg.MaxRecords)
		return infraNotification.NewMemoryRepository(cfg), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
