package storage

import (
	"context"
	"fmt"

	"lineup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Частичные индексы не выражаются тегами gorm, поэтому создаются отдельно.
var indexStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_sessions_active_store
		ON queue_sessions (store_id) WHERE status = 'active'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_members_active_staff
		ON queue_members (session_id, staff_id) WHERE status <> 'unavailable'`,
	`CREATE INDEX IF NOT EXISTS idx_queue_members_order
		ON queue_members (session_id, status, position)`,
	`CREATE INDEX IF NOT EXISTS idx_attendances_session_started
		ON attendances (session_id, started_at)`,
}

// Migrate создаёт и обновляет схему базы данных.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// DefaultLossReasons: общие причины потерь, которые создаются командой seed-loss-reasons.
var DefaultLossReasons = []string{
	"Preço",
	"Sem estoque",
	"Tamanho indisponível",
	"Só olhando",
	"Vai pensar",
	"Outro",
}

// SeedLossReasons добавляет отсутствующие причины потерь. storeID == nil создаёт общие причины.
// Возвращает количество созданных записей.
func SeedLossReasons(ctx context.Context, db *gorm.DB, storeID *uuid.UUID, names []string) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, name := range names {
			q := tx.Model(&models.LossReason{}).Where("name = ?", name)
			if storeID == nil {
				q = q.Where("store_id IS NULL")
			} else {
				q = q.Where("store_id = ?", *storeID)
			}
			var count int64
			if err := q.Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			reason := models.LossReason{StoreID: storeID, Name: name, Active: true, DisplayOrder: i + 1}
			if err := tx.Create(&reason).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed loss reasons: %w", err)
	}
	return created, nil
}
