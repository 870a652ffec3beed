package lineup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lineup/internal/models"
	"lineup/internal/monitoring"
	"lineup/internal/notify"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Attendances ведёт жизненный цикл обслуживания: in_progress -> finished.
type Attendances struct {
	*core
}

// AttendancePatch: административная правка обслуживания. Пустые поля не меняются.
type AttendancePatch struct {
	CustomerName *string
	StartedAt    *time.Time
	EndedAt      *time.Time
	Outcome      *OutcomeInput
}

// ManualAttendanceInput: запись обслуживания задним числом, без участия очереди.
type ManualAttendanceInput struct {
	SessionID    uuid.UUID
	StaffID      uuid.UUID
	CustomerName string
	StartedAt    time.Time
	EndedAt      time.Time
	Outcome      OutcomeInput
}

// AttendanceFilter отбирает обслуживания для списка. Нулевые поля не фильтруют.
type AttendanceFilter struct {
	SessionID uuid.UUID
	StaffID   uuid.UUID
	Status    models.AttendanceStatus
	From      time.Time
	To        time.Time
}

func loadAttendance(tx *gorm.DB, id uuid.UUID) (models.Attendance, error) {
	var a models.Attendance
	if err := tx.Preload("Outcome").Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a, ErrAttendanceNotFound
		}
		return a, err
	}
	return a, nil
}

// Start начинает обслуживание: сотрудник уходит из очереди и становится занятым.
// Из двух одновременных вызовов для одного сотрудника побеждает первый зафиксированный,
// второй получает ErrMemberBusy.
func (s *Attendances) Start(ctx context.Context, memberID uuid.UUID, customerName string) (models.Attendance, error) {
	var a models.Attendance
	err := s.mutate(ctx, "start", byMember(memberID), func(tx *gorm.DB, ch *change) error {
		m, err := loadMember(tx, memberID)
		if err != nil {
			return err
		}
		if !m.Queued() {
			return fmt.Errorf("%w: status %s", ErrMemberBusy, m.Status)
		}

		res := tx.Model(&models.QueueMember{}).
			Where("id = ? AND status = ?", m.ID, models.MemberAvailable).
			Updates(map[string]any{"status": models.MemberInAttendance, "position": 0})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberBusy
		}

		a = models.Attendance{
			SessionID:    m.SessionID,
			StoreID:      ch.session.StoreID,
			StaffID:      m.StaffID,
			MemberID:     &m.ID,
			CustomerName: strings.TrimSpace(customerName),
			StartedAt:    ch.at,
			Status:       models.AttendanceInProgress,
		}
		if err := tx.Omit(clause.Associations).Create(&a).Error; err != nil {
			return err
		}
		if err := renumber(tx, m.SessionID); err != nil {
			return err
		}

		ch.emit(notify.AttendanceStarted, m.ID, a.ID)
		return nil
	})
	return a, err
}

// Finalize завершает обслуживание, записывает итог и возвращает сотрудника в конец очереди.
// Сотрудник возвращается, только если его место всё ещё занято этим обслуживанием.
func (s *Attendances) Finalize(ctx context.Context, attendanceID uuid.UUID, in OutcomeInput) (models.Attendance, error) {
	var a models.Attendance
	err := s.mutate(ctx, "finalize", byAttendance(attendanceID), func(tx *gorm.DB, ch *change) error {
		var err error
		a, err = loadAttendance(tx, attendanceID)
		if err != nil {
			return err
		}
		if a.Status != models.AttendanceInProgress {
			return ErrAlreadyFinalized
		}
		outcome, err := buildOutcome(tx, a.StoreID, in)
		if err != nil {
			return err
		}

		ended := ch.at
		if ended.Before(a.StartedAt) {
			ended = a.StartedAt
		}
		res := tx.Model(&models.Attendance{}).
			Where("id = ? AND status = ?", a.ID, models.AttendanceInProgress).
			Updates(map[string]any{"status": models.AttendanceFinished, "ended_at": ended})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFinalized
		}

		outcome.AttendanceID = a.ID
		if err := tx.Create(&outcome).Error; err != nil {
			return err
		}
		a.Status, a.EndedAt, a.Outcome = models.AttendanceFinished, &ended, &outcome

		memberID := uuid.Nil
		if a.MemberID != nil {
			m, err := loadMember(tx, *a.MemberID)
			switch {
			case errors.Is(err, ErrMemberNotFound):
			case err != nil:
				return err
			case m.Status == models.MemberInAttendance:
				if err := appendToTail(tx, &m); err != nil {
					return err
				}
				memberID = m.ID
			}
		}

		ch.emit(notify.AttendanceFinalized, memberID, a.ID)
		return nil
	})
	if err != nil {
		return a, err
	}
	if d, ok := a.Duration(); ok {
		monitoring.ObserveAttendance(string(a.Outcome.Result), d)
	}
	return a, nil
}

// Transfer передаёт обслуживание другому сотруднику. Прежний сотрудник уходит на перерыв
// и в очередь сам не возвращается. Если у нового сотрудника есть место в сессии, оно
// становится занятым этим обслуживанием.
func (s *Attendances) Transfer(ctx context.Context, attendanceID, newStaffID uuid.UUID, reason string) (models.Attendance, error) {
	var a models.Attendance
	if newStaffID == uuid.Nil {
		return a, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	err := s.mutate(ctx, "transfer", byAttendance(attendanceID), func(tx *gorm.DB, ch *change) error {
		var err error
		a, err = loadAttendance(tx, attendanceID)
		if err != nil {
			return err
		}
		if a.Status != models.AttendanceInProgress {
			return ErrAttendanceNotInProgress
		}
		if a.StaffID == newStaffID {
			return fmt.Errorf("%w: attendance already belongs to this staff member", ErrInvalidInput)
		}

		var slots []models.QueueMember
		if err := tx.Where("session_id = ? AND staff_id = ? AND status <> ?", a.SessionID, newStaffID, models.MemberUnavailable).
			Limit(1).Find(&slots).Error; err != nil {
			return err
		}
		var target *models.QueueMember
		var targetStatus models.MemberStatus
		if len(slots) == 1 {
			target = &slots[0]
			if target.Status == models.MemberInAttendance {
				return fmt.Errorf("%w: target staff member is serving another customer", ErrMemberBusy)
			}
			targetStatus = target.Status
			if err := setMember(tx, target, models.MemberInAttendance, 0); err != nil {
				return err
			}
		}

		if a.MemberID != nil {
			if err := releaseMember(tx, a, *a.MemberID); err != nil {
				return err
			}
		}
		if err := renumber(tx, a.SessionID); err != nil {
			return err
		}

		record := models.AttendanceTransfer{
			AttendanceID:   a.ID,
			FromStaffID:    a.StaffID,
			ToStaffID:      newStaffID,
			ToMemberStatus: targetStatus,
			Reason:         strings.TrimSpace(reason),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		var memberRef any
		a.MemberID = nil
		if target != nil {
			memberRef = target.ID
			a.MemberID = &target.ID
		}
		a.StaffID = newStaffID
		if err := tx.Model(&models.Attendance{}).Where("id = ?", a.ID).
			Updates(map[string]any{"staff_id": newStaffID, "member_id": memberRef}).Error; err != nil {
			return err
		}

		memberID := uuid.Nil
		if target != nil {
			memberID = target.ID
		}
		ch.emit(notify.AttendanceTransferred, memberID, a.ID)
		return nil
	})
	return a, err
}

// releaseMember освобождает место сотрудника, у которого забрали обслуживание. Если он сам
// получил обслуживание передачей, место возвращается в прежний статус: из очереди в её конец,
// с перерыва обратно на перерыв. Сотрудник, начавший обслуживание, уходит на перерыв.
func releaseMember(tx *gorm.DB, a models.Attendance, memberID uuid.UUID) error {
	m, err := loadMember(tx, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if m.Status != models.MemberInAttendance {
		return nil
	}

	var prior []models.AttendanceTransfer
	if err := tx.Where("attendance_id = ? AND to_staff_id = ?", a.ID, a.StaffID).
		Order("created_at DESC").Limit(1).Find(&prior).Error; err != nil {
		return err
	}
	if len(prior) == 1 && prior[0].ToMemberStatus == models.MemberAvailable {
		return appendToTail(tx, &m)
	}
	return setMember(tx, &m, models.MemberPaused, 0)
}

// Edit исправляет данные обслуживания. Время окончания и итог правятся только у завершённых.
// Очередь не затрагивается.
func (s *Attendances) Edit(ctx context.Context, attendanceID uuid.UUID, patch AttendancePatch) (models.Attendance, error) {
	var a models.Attendance
	if patch.CustomerName == nil && patch.StartedAt == nil && patch.EndedAt == nil && patch.Outcome == nil {
		return a, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	err := s.mutate(ctx, "edit", byAttendance(attendanceID), func(tx *gorm.DB, ch *change) error {
		var err error
		a, err = loadAttendance(tx, attendanceID)
		if err != nil {
			return err
		}
		finished := a.Status == models.AttendanceFinished
		if !finished && (patch.EndedAt != nil || patch.Outcome != nil) {
			return fmt.Errorf("%w: attendance is still in progress", ErrInvalidInput)
		}

		updates := map[string]any{}
		if patch.CustomerName != nil {
			updates["customer_name"] = strings.TrimSpace(*patch.CustomerName)
		}
		started := a.StartedAt
		if patch.StartedAt != nil {
			started = patch.StartedAt.UTC()
			updates["started_at"] = started
		}
		ended := a.EndedAt
		if patch.EndedAt != nil {
			t := patch.EndedAt.UTC()
			ended = &t
			updates["ended_at"] = t
		}
		if ended != nil && ended.Before(started) {
			return fmt.Errorf("%w: ended_at is before started_at", ErrInvalidInput)
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Attendance{}).Where("id = ?", a.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Outcome != nil {
			outcome, err := buildOutcome(tx, a.StoreID, *patch.Outcome)
			if err != nil {
				return err
			}
			if err := saveOutcome(tx, a, outcome); err != nil {
				return err
			}
		}

		a, err = loadAttendance(tx, attendanceID)
		if err != nil {
			return err
		}
		ch.emit(notify.AttendanceEdited, uuid.Nil, a.ID)
		return nil
	})
	return a, err
}

// saveOutcome заменяет итог обслуживания. Ссылка на продажу сохраняется, только пока итог остаётся продажей.
func saveOutcome(tx *gorm.DB, a models.Attendance, outcome models.AttendanceOutcome) error {
	if a.Outcome == nil {
		outcome.AttendanceID = a.ID
		return tx.Create(&outcome).Error
	}
	var lossReason, saleRecord any
	if outcome.LossReasonID != nil {
		lossReason = *outcome.LossReasonID
	}
	if outcome.Result == models.OutcomeSale && a.Outcome.SaleRecordID != nil {
		saleRecord = *a.Outcome.SaleRecordID
	}
	return tx.Model(&models.AttendanceOutcome{}).Where("attendance_id = ?", a.ID).
		Updates(map[string]any{
			"result":         outcome.Result,
			"sale_value":     outcome.SaleValue,
			"loss_reason_id": lossReason,
			"sale_record_id": saleRecord,
			"notes":          outcome.Notes,
		}).Error
}

// CreateManual записывает завершённое обслуживание с явными временами.
func (s *Attendances) CreateManual(ctx context.Context, in ManualAttendanceInput) (models.Attendance, error) {
	var a models.Attendance
	switch {
	case in.StaffID == uuid.Nil:
		return a, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	case in.StartedAt.IsZero() || in.EndedAt.IsZero():
		return a, fmt.Errorf("%w: started_at and ended_at are required", ErrInvalidInput)
	case in.EndedAt.Before(in.StartedAt):
		return a, fmt.Errorf("%w: ended_at is before started_at", ErrInvalidInput)
	}
	err := s.mutate(ctx, "create_manual", bySession(in.SessionID), func(tx *gorm.DB, ch *change) error {
		outcome, err := buildOutcome(tx, ch.session.StoreID, in.Outcome)
		if err != nil {
			return err
		}
		ended := in.EndedAt.UTC()
		a = models.Attendance{
			SessionID:    ch.session.ID,
			StoreID:      ch.session.StoreID,
			StaffID:      in.StaffID,
			CustomerName: strings.TrimSpace(in.CustomerName),
			StartedAt:    in.StartedAt.UTC(),
			EndedAt:      &ended,
			Status:       models.AttendanceFinished,
			Manual:       true,
		}
		if err := tx.Omit(clause.Associations).Create(&a).Error; err != nil {
			return err
		}
		outcome.AttendanceID = a.ID
		if err := tx.Create(&outcome).Error; err != nil {
			return err
		}
		a.Outcome = &outcome

		ch.emit(notify.AttendanceCreated, uuid.Nil, a.ID)
		return nil
	})
	return a, err
}

// LinkSaleRecord привязывает запись о продаже из внешней системы к итогу-продаже.
func (s *Attendances) LinkSaleRecord(ctx context.Context, attendanceID uuid.UUID, saleRecordID string) (models.Attendance, error) {
	var a models.Attendance
	saleRecordID = strings.TrimSpace(saleRecordID)
	if saleRecordID == "" {
		return a, fmt.Errorf("%w: sale record id is required", ErrInvalidInput)
	}
	err := s.mutate(ctx, "link_sale_record", byAttendance(attendanceID), func(tx *gorm.DB, ch *change) error {
		var err error
		a, err = loadAttendance(tx, attendanceID)
		if err != nil {
			return err
		}
		if a.Outcome == nil || a.Outcome.Result != models.OutcomeSale {
			return fmt.Errorf("%w: only sales can be linked to a sale record", ErrInvalidOutcome)
		}
		if err := tx.Model(a.Outcome).Update("sale_record_id", saleRecordID).Error; err != nil {
			return err
		}
		a.Outcome.SaleRecordID = &saleRecordID
		ch.emit(notify.SaleRecordLinked, uuid.Nil, a.ID)
		return nil
	})
	return a, err
}

// Get возвращает обслуживание вместе с итогом.
func (s *Attendances) Get(ctx context.Context, id uuid.UUID) (models.Attendance, error) {
	a, err := loadAttendance(s.db.WithContext(ctx), id)
	if err != nil {
		return a, classify("get attendance", err)
	}
	return a, nil
}

// ListInProgress возвращает текущие обслуживания сессии по времени начала.
func (s *Attendances) ListInProgress(ctx context.Context, sessionID uuid.UUID) ([]models.Attendance, error) {
	return s.List(ctx, AttendanceFilter{SessionID: sessionID, Status: models.AttendanceInProgress})
}

// List возвращает обслуживания по фильтру, упорядоченные по времени начала.
func (s *Attendances) List(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	db := s.db.WithContext(ctx)
	if f.SessionID != uuid.Nil {
		if err := sessionExists(db, f.SessionID); err != nil {
			return nil, classify("list attendances", err)
		}
	}
	var list []models.Attendance
	if err := filterAttendances(db.Preload("Outcome"), f).
		Order("started_at ASC").Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, classify("list attendances", err)
	}
	return list, nil
}

func filterAttendances(q *gorm.DB, f AttendanceFilter) *gorm.DB {
	if f.SessionID != uuid.Nil {
		q = q.Where("session_id = ?", f.SessionID)
	}
	if f.StaffID != uuid.Nil {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.From.IsZero() {
		q = q.Where("started_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("started_at < ?", f.To.UTC())
	}
	return q
}
