package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chatapp/backend/internal/domain/notification"
)

// SQLiteDeliveryRepository 投递记录 SQLite 仓储实现
type SQLiteDeliveryRepository struct {
	db         *sql.DB
	maxRecords int
}

// NewSQLiteDeliveryRepository 创建投递记录仓储并确保表存在
func NewSQLiteDeliveryRepository(db *sql.DB, maxRecords int) (*SQLiteDeliveryRepository, error) {
	if err := initDeliveryTable(db); err != nil {
		return nil, err
	}
	return &SQLiteDeliveryRepository{db: db, maxRecords: maxRecords}, nil
}

func initDeliveryTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS deliveries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		token_hash TEXT NOT NULL,
		title TEXT NOT NULL,
		provider TEXT NOT NULL,
		status TEXT NOT NULL,
		message_id TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create deliveries table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries(created_at);
	CREATE INDEX IF NOT EXISTS idx_deliveries_status ON deliveries(status);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create deliveries indexes: %w", err)
	}

	return nil
}

// Save 保存投递记录并淘汰超出上限的旧记录
func (r *SQLiteDeliveryRepository) Save(ctx context.Context, record *notification.DeliveryRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO deliveries (id, token_hash, title, provider, status, message_id, error, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.TokenHash,
		record.Title,
		record.Provider,
		string(record.Status),
		record.MessageID,
		record.Error,
		record.LatencyMs,
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM deliveries
		WHERE seq <= (SELECT MAX(seq) FROM deliveries) - ?`,
		r.maxRecords,
	)
	if err != nil {
		return fmt.Errorf("failed to prune deliveries: %w", err)
	}

	return tx.Commit()
}

// FindRecent 返回最近写入的记录，最新在前
func (r *SQLiteDeliveryRepository) FindRecent(ctx context.Context, limit int) ([]*notification.DeliveryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token_hash, title, provider, status, message_id, error, latency_ms, created_at
		FROM deliveries
		ORDER BY seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries: %w", err)
	}
	defer rows.Close()

	var records []*notification.DeliveryRecord
	for rows.Next() {
		var (
			record    notification.DeliveryRecord
			status    string
			createdAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.TokenHash,
			&record.Title,
			&record.Provider,
			&status,
			&record.MessageID,
			&record.Error,
			&record.LatencyMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		record.Status = notification.Status(status)
		record.CreatedAt = time.UnixMilli(createdAt)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deliveries: %w", err)
	}

	return records, nil
}

// 编译时检查接口实现
var _ notification.DeliveryRepository = (*SQLiteDeliveryRepository)(nil)
