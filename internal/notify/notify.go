package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	SessionOpened         EventType = "session_opened"
	MemberEnqueued        EventType = "member_enqueued"
	MemberDequeued        EventType = "member_dequeued"
	MemberMoved           EventType = "member_moved"
	MemberPaused          EventType = "member_paused"
	MemberResumed         EventType = "member_resumed"
	AttendanceStarted     EventType = "attendance_started"
	AttendanceFinalized   EventType = "attendance_finalized"
	AttendanceTransferred EventType = "attendance_transferred"
	AttendanceEdited      EventType = "attendance_edited"
	AttendanceCreated     EventType = "attendance_created"
	SaleRecordLinked      EventType = "sale_record_linked"
)

// Event: уведомление об изменении очереди или обслуживания.
// Клиенты получают его как сигнал перечитать состояние, полного снимка в нём нет.
type Event struct {
	EventType    EventType  `json:"event_type"`
	StoreID      uuid.UUID  `json:"store_id"`
	SessionID    uuid.UUID  `json:"session_id"`
	MemberID     *uuid.UUID `json:"member_id,omitempty"`
	AttendanceID *uuid.UUID `json:"attendance_id,omitempty"`
	At           time.Time  `json:"at"`
}

// Publisher рассылает события после фиксации транзакции.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop отбрасывает события.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout рассылает событие всем издателям и собирает их ошибки.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
