package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lineup/internal/models"
	"lineup/internal/monitoring"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler выполняет фоновые задачи обслуживания. Задачи только читают данные:
// зависшие обслуживания попадают в лог и метрики, но не завершаются автоматически.
type Scheduler struct {
	db        *gorm.DB
	log       *slog.Logger
	threshold time.Duration
	now       func() time.Time
}

func NewScheduler(db *gorm.DB, log *slog.Logger, threshold time.Duration) *Scheduler {
	return &Scheduler{db: db, log: log, threshold: threshold, now: time.Now}
}

type memberCount struct {
	SessionID string
	Status    models.MemberStatus
	Total     int
}

// RefreshQueueGauges обновляет размеры очередей активных сессий.
func (s *Scheduler) RefreshQueueGauges(ctx context.Context) error {
	var rows []memberCount
	err := s.db.WithContext(ctx).
		Table("queue_members AS m").
		Select("m.session_id AS session_id, m.status AS status, COUNT(*) AS total").
		Joins("JOIN queue_sessions AS s ON s.id = m.session_id").
		Where("s.status = ?", models.SessionActive).
		Group("m.session_id, m.status").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count queue members: %w", err)
	}

	monitoring.ResetQueueMembers()
	for _, r := range rows {
		monitoring.SetQueueMembers(r.SessionID, string(r.Status), r.Total)
	}
	monitoring.CollectGoroutines()
	return nil
}

// FlagLongAttendances находит обслуживания, идущие дольше порога, и возвращает их число.
func (s *Scheduler) FlagLongAttendances(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.threshold)

	var long []models.Attendance
	err := s.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", models.AttendanceInProgress, cutoff).
		Order("started_at").
		Find(&long).Error
	if err != nil {
		return 0, fmt.Errorf("find long attendances: %w", err)
	}

	for _, a := range long {
		s.log.Warn("Обслуживание идёт слишком долго",
			"attendance_id", a.ID,
			"session_id", a.SessionID,
			"staff_id", a.StaffID,
			"started_at", a.StartedAt,
		)
	}
	monitoring.SetLongRunningAttendances(len(long))
	return len(long), nil
}

// InitScheduler регистрирует задачи и запускает cron-планировщик.
// Остановка: ctx := c.Stop(); <-ctx.Done().
func InitScheduler(ctx context.Context, s *Scheduler, gaugeSpec, longSpec string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	// Обновление метрик очереди.
	if _, err := c.AddFunc(gaugeSpec, func() {
		if err := s.RefreshQueueGauges(ctx); err != nil {
			s.log.Error("Ошибка обновления метрик очереди", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("add job RefreshQueueGauges: %w", err)
	}

	// Поиск зависших обслуживаний.
	if _, err := c.AddFunc(longSpec, func() {
		if _, err := s.FlagLongAttendances(ctx); err != nil {
			s.log.Error("Ошибка поиска долгих обслуживаний", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("add job FlagLongAttendances: %w", err)
	}

	c.Start()
	s.log.Info("Cron-планировщик запущен", "gauges", gaugeSpec, "long_attendances", longSpec)
	return c, nil
}
