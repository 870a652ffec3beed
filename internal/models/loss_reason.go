package models

import "github.com/google/uuid"

// LossReason: причина потерянной продажи. StoreID == nil означает общую причину для всех магазинов.
type LossReason struct {
	Base
	StoreID      *uuid.UUID `gorm:"type:uuid;index" json:"store_id,omitempty"`
	Name         string     `gorm:"size:128;not null" json:"name"`
	Active       bool       `gorm:"not null" json:"active"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
}
