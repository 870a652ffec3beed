package lineup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"lineup/internal/models"
	"lineup/internal/notify"
	"lineup/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Publish(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []notify.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, notify.Event) error {
	return errors.New("redis is down")
}

// stepClock отдаёт время с шагом в минуту при каждом обращении.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.t
	c.t = c.t.Add(time.Minute)
	return t
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	t       *testing.T
	ctx     context.Context
	db      *gorm.DB
	svc     *Service
	events  *recorder
	store   uuid.UUID
	session models.Session
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, openTestDB(t))
}

// newFixtureOn создаёт сервис и активную сессию нового магазина поверх переданной базы.
func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	events := &recorder{}
	clock := &stepClock{t: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := New(db, WithPublisher(events), WithClock(clock.now), WithLogger(quietLogger))

	f := &fixture{t: t, ctx: context.Background(), db: db, svc: svc, events: events, store: uuid.New()}
	session, err := svc.Sessions.GetOrCreateActive(f.ctx, f.store)
	require.NoError(t, err)
	f.session = session
	return f
}

func (f *fixture) enqueue(staff ...uuid.UUID) []models.QueueMember {
	f.t.Helper()
	out := make([]models.QueueMember, 0, len(staff))
	for _, s := range staff {
		m, err := f.svc.Queue.Enqueue(f.ctx, f.session.ID, s)
		require.NoError(f.t, err)
		out = append(out, m)
	}
	return out
}

// order возвращает сотрудников очереди в порядке позиций.
func (f *fixture) order() []uuid.UUID {
	f.t.Helper()
	members, err := f.svc.Queue.ListAvailable(f.ctx, f.session.ID)
	require.NoError(f.t, err)
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		out = append(out, m.StaffID)
	}
	return out
}

func (f *fixture) member(id uuid.UUID) models.QueueMember {
	f.t.Helper()
	m, err := f.svc.Queue.Member(f.ctx, id)
	require.NoError(f.t, err)
	return m
}

// assertConsistent проверяет инварианты очереди: позиции свободных равны 1..N,
// у остальных позиция 0, у занятого сотрудника ровно одно текущее обслуживание.
func (f *fixture) assertConsistent() {
	f.t.Helper()
	var members []models.QueueMember
	require.NoError(f.t, f.db.Where("session_id = ?", f.session.ID).Find(&members).Error)

	var positions []int
	for _, m := range members {
		if m.Status == models.MemberAvailable {
			positions = append(positions, m.Position)
		} else {
			assert.Zero(f.t, m.Position, "member %s with status %s keeps a position", m.ID, m.Status)
		}

		var inProgress int64
		require.NoError(f.t, f.db.Model(&models.Attendance{}).
			Where("member_id = ? AND status = ?", m.ID, models.AttendanceInProgress).
			Count(&inProgress).Error)
		if m.Status == models.MemberInAttendance {
			assert.Equal(f.t, int64(1), inProgress, "busy member %s", m.ID)
		} else {
			assert.Zero(f.t, inProgress, "member %s with status %s has an open attendance", m.ID, m.Status)
		}
	}

	sort.Ints(positions)
	for i, p := range positions {
		assert.Equal(f.t, i+1, p, "positions %v are not dense", positions)
	}
}

func (f *fixture) lossReason(name string, storeID *uuid.UUID, active bool) models.LossReason {
	f.t.Helper()
	reason := models.LossReason{StoreID: storeID, Name: name, Active: active}
	require.NoError(f.t, f.db.Create(&reason).Error)
	return reason
}

func sale(value string) OutcomeInput {
	v := decimal.RequireFromString(value)
	return OutcomeInput{Result: models.OutcomeSale, SaleValue: &v}
}

func loss(reasonID uuid.UUID) OutcomeInput {
	return OutcomeInput{Result: models.OutcomeLoss, LossReasonID: &reasonID}
}

func TestGetOrCreateActiveIsIdempotent(t *testing.T) {
	f := newFixture(t)

	again, err := f.svc.Sessions.GetOrCreateActive(f.ctx, f.store)
	require.NoError(t, err)
	assert.Equal(t, f.session.ID, again.ID)
	assert.Equal(t, models.SessionActive, again.Status)

	other, err := f.svc.Sessions.GetOrCreateActive(f.ctx, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, f.session.ID, other.ID)

	assert.Equal(t, []notify.EventType{notify.SessionOpened, notify.SessionOpened}, f.events.types())
}

func TestGetOrCreateActiveConcurrent(t *testing.T) {
	f := newFixture(t)
	store := uuid.New()

	const callers = 8
	ids := make([]uuid.UUID, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.svc.Sessions.GetOrCreateActive(f.ctx, store)
			assert.NoError(t, err)
			ids[i] = s.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	var count int64
	require.NoError(t, f.db.Model(&models.Session{}).
		Where("store_id = ? AND status = ?", store, models.SessionActive).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateActiveRejectsNilStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Sessions.GetOrCreateActive(f.ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSessionsGet(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Sessions.Get(f.ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, f.store, got.StoreID)

	_, err = f.svc.Sessions.Get(f.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	svc := New(f.db, WithPublisher(failingPublisher{}), WithLogger(quietLogger))

	m, err := svc.Queue.Enqueue(f.ctx, f.session.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Position)
}

func TestFailedOperationPublishesNothing(t *testing.T) {
	f := newFixture(t)
	staff := uuid.New()
	f.enqueue(staff)
	f.events.reset()

	_, err := f.svc.Queue.Enqueue(f.ctx, f.session.ID, staff)
	require.ErrorIs(t, err, ErrAlreadyQueued)
	assert.Empty(t, f.events.types())
}

func TestEventsCarryStoreAndSession(t *testing.T) {
	f := newFixture(t)
	f.events.reset()

	m := f.enqueue(uuid.New())[0]

	require.Len(t, f.events.events, 1)
	e := f.events.events[0]
	assert.Equal(t, notify.MemberEnqueued, e.EventType)
	assert.Equal(t, f.store, e.StoreID)
	assert.Equal(t, f.session.ID, e.SessionID)
	require.NotNil(t, e.MemberID)
	assert.Equal(t, m.ID, *e.MemberID)
	assert.Nil(t, e.AttendanceID)
}
