// Package lineup реализует "Lista da Vez": справедливую очередь сотрудников магазина
// и жизненный цикл обслуживания покупателей.
//
// Каждая изменяющая операция выполняется одной транзакцией, которая сначала блокирует
// строку сессии. Все записи одной сессии поэтому идут строго по очереди, а разные
// магазины друг другу не мешают. События об изменениях рассылаются только после фиксации.
package lineup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lineup/internal/models"
	"lineup/internal/monitoring"
	"lineup/internal/notify"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Option func(*core)

func WithLogger(l *slog.Logger) Option {
	return func(c *core) { c.log = l }
}

func WithPublisher(p notify.Publisher) Option {
	return func(c *core) { c.pub = p }
}

// WithClock подменяет источник времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

type core struct {
	db  *gorm.DB
	log *slog.Logger
	pub notify.Publisher
	now func() time.Time
}

// Service объединяет компоненты очереди.
type Service struct {
	Sessions    *Sessions
	Queue       *Queue
	Attendances *Attendances
	LossReasons *LossReasons
	Metrics     *Metrics
}

func New(db *gorm.DB, opts ...Option) *Service {
	c := &core{db: db, log: slog.Default(), pub: notify.Nop{}, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	reasons := &LossReasons{core: c}
	return &Service{
		Sessions:    &Sessions{core: c},
		Queue:       &Queue{core: c},
		Attendances: &Attendances{core: c},
		LossReasons: reasons,
		Metrics:     &Metrics{core: c},
	}
}

func (c *core) clock() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

// change накапливает события транзакции до её фиксации.
type change struct {
	session models.Session
	at      time.Time
	events  []notify.Event
}

func (ch *change) emit(t notify.EventType, memberID, attendanceID uuid.UUID) {
	e := notify.Event{
		EventType: t,
		StoreID:   ch.session.StoreID,
		SessionID: ch.session.ID,
		At:        ch.at,
	}
	if memberID != uuid.Nil {
		e.MemberID = &memberID
	}
	if attendanceID != uuid.Nil {
		e.AttendanceID = &attendanceID
	}
	ch.events = append(ch.events, e)
}

type sessionResolver func(db *gorm.DB) (uuid.UUID, error)

func bySession(id uuid.UUID) sessionResolver {
	return func(*gorm.DB) (uuid.UUID, error) { return id, nil }
}

// Сессия участника и обслуживания не меняется, поэтому её можно прочитать до блокировки.
func byMember(id uuid.UUID) sessionResolver {
	return func(db *gorm.DB) (uuid.UUID, error) {
		var m models.QueueMember
		if err := db.Select("id", "session_id").Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, ErrMemberNotFound
			}
			return uuid.Nil, err
		}
		return m.SessionID, nil
	}
}

func byAttendance(id uuid.UUID) sessionResolver {
	return func(db *gorm.DB) (uuid.UUID, error) {
		var a models.Attendance
		if err := db.Select("id", "session_id").Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, ErrAttendanceNotFound
			}
			return uuid.Nil, err
		}
		return a.SessionID, nil
	}
}

// mutate выполняет fn в транзакции под блокировкой сессии и публикует события после фиксации.
func (c *core) mutate(ctx context.Context, op string, resolve sessionResolver, fn func(tx *gorm.DB, ch *change) error) (err error) {
	defer observe(op, time.Now(), &err)

	db := c.db.WithContext(ctx)
	sessionID, err := resolve(db)
	if err != nil {
		return classify(op, err)
	}

	ch := &change{at: c.clock()}
	err = db.Transaction(func(tx *gorm.DB) error {
		s, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		ch.session = s
		return fn(tx, ch)
	})
	if err != nil {
		return classify(op, err)
	}

	c.publish(ctx, ch.events)
	return nil
}

func (c *core) publish(ctx context.Context, events []notify.Event) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range events {
		if err := c.pub.Publish(ctx, e); err != nil {
			monitoring.TrackPublishFailure()
			c.log.Warn("Не удалось опубликовать событие",
				"event", e.EventType, "session_id", e.SessionID, "error", err)
		}
	}
}

func observe(op string, start time.Time, err *error) {
	monitoring.TrackOperation(op, Code(*err), time.Since(start))
}

// lockSession блокирует строку сессии до конца транзакции. SQLite работает через одно
// соединение и FOR UPDATE не поддерживает, там транзакции и так идут последовательно.
func lockSession(tx *gorm.DB, id uuid.UUID) (models.Session, error) {
	var s models.Session
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s, ErrSessionNotFound
		}
		return s, err
	}
	return s, nil
}

func sessionExists(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Session{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSessionNotFound
	}
	return nil
}
