package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base содержит общие поля всех таблиц: UUID-идентификатор и отметки времени.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate генерирует идентификатор, если он не был задан заранее.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All возвращает все модели для AutoMigrate в порядке зависимостей.
func All() []any {
	return []any{
		&Session{},
		&QueueMember{},
		&LossReason{},
		&Attendance{},
		&AttendanceOutcome{},
		&AttendanceTransfer{},
	}
}
