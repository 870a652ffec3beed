package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AttendanceStatus string

const (
	AttendanceInProgress AttendanceStatus = "in_progress"
	AttendanceFinished   AttendanceStatus = "finished"
)

type OutcomeResult string

const (
	OutcomeSale OutcomeResult = "sale"
	OutcomeLoss OutcomeResult = "loss"
)

// Attendance: одно обслуживание покупателя сотрудником. Записи никогда не удаляются.
type Attendance struct {
	Base
	SessionID    uuid.UUID          `gorm:"type:uuid;index;not null" json:"session_id"`
	StoreID      uuid.UUID          `gorm:"type:uuid;index;not null" json:"store_id"`
	StaffID      uuid.UUID          `gorm:"type:uuid;index;not null" json:"staff_id"`
	MemberID     *uuid.UUID         `gorm:"type:uuid;index" json:"member_id,omitempty"` // nil для ручных записей
	CustomerName string             `gorm:"size:255" json:"customer_name,omitempty"`
	StartedAt    time.Time          `gorm:"index;not null" json:"started_at"`
	EndedAt      *time.Time         `json:"ended_at,omitempty"`
	Status       AttendanceStatus   `gorm:"size:16;index;not null" json:"status"`
	Manual       bool               `gorm:"not null;default:false" json:"manual"`
	Outcome      *AttendanceOutcome `gorm:"foreignKey:AttendanceID" json:"outcome,omitempty"`
}

// Duration возвращает длительность завершённого обслуживания.
func (a Attendance) Duration() (time.Duration, bool) {
	if a.EndedAt == nil {
		return 0, false
	}
	return a.EndedAt.Sub(a.StartedAt), true
}

// AttendanceOutcome: итог обслуживания: продажа или потеря. Ровно один на завершённое обслуживание.
type AttendanceOutcome struct {
	Base
	AttendanceID uuid.UUID           `gorm:"type:uuid;uniqueIndex;not null" json:"attendance_id"`
	Result       OutcomeResult       `gorm:"size:16;not null" json:"result"`
	SaleValue    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sale_value"`
	LossReasonID *uuid.UUID          `gorm:"type:uuid;index" json:"loss_reason_id,omitempty"`
	SaleRecordID *string             `gorm:"size:128" json:"sale_record_id,omitempty"` // идентификатор продажи во внешней системе
	Notes        string              `gorm:"type:text" json:"notes,omitempty"`
}

// AttendanceTransfer: журнал передачи обслуживания другому сотруднику.
type AttendanceTransfer struct {
	Base
	AttendanceID uuid.UUID `gorm:"type:uuid;index;not null" json:"attendance_id"`
	FromStaffID  uuid.UUID `gorm:"type:uuid;not null" json:"from_staff_id"`
	ToStaffID    uuid.UUID `gorm:"type:uuid;not null" json:"to_staff_id"`

	// Статус места нового сотрудника до передачи; пусто, если места в сессии не было.
	ToMemberStatus MemberStatus `gorm:"size:16" json:"to_member_status,omitempty"`
	Reason         string       `gorm:"size:255" json:"reason,omitempty"`
}
