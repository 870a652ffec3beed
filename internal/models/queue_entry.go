package models

import "github.com/google/uuid"

type MemberStatus string

const (
	MemberAvailable    MemberStatus = "available"
	MemberInAttendance MemberStatus = "in_attendance"
	MemberPaused       MemberStatus = "paused"
	MemberUnavailable  MemberStatus = "unavailable"
)

// QueueMember: место сотрудника в очереди сессии.
type QueueMember struct {
	Base
	SessionID uuid.UUID    `gorm:"type:uuid;index;not null" json:"session_id"`
	StaffID   uuid.UUID    `gorm:"type:uuid;index;not null" json:"staff_id"`
	Position  int          `gorm:"not null;default:0" json:"position"` // 0, если сотрудник не стоит в очереди
	Status    MemberStatus `gorm:"size:16;not null" json:"status"`
}

// Queued сообщает, участвует ли сотрудник в порядке очереди.
func (m QueueMember) Queued() bool {
	return m.Status == MemberAvailable
}
