package models

import "github.com/google/uuid"

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// Session: рабочая смена магазина, в рамках которой ведётся очередь.
// Для одного магазина активна не более чем одна сессия (частичный уникальный индекс).
type Session struct {
	Base
	StoreID uuid.UUID     `gorm:"type:uuid;index;not null" json:"store_id"`
	Status  SessionStatus `gorm:"size:16;not null" json:"status"`
}

func (Session) TableName() string { return "queue_sessions" }
