package lineup

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"lineup/internal/models"
	"lineup/internal/notify"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Queue управляет порядком свободных сотрудников сессии.
// Позиции свободных сотрудников всегда равны 1..N без пропусков, у остальных позиция 0.
type Queue struct {
	*core
}

// Перенумерация одним запросом: порядок сохраняется, позиции становятся 1..N.
const renumberSQL = `UPDATE queue_members SET position = ranked.rn
FROM (
	SELECT id, ROW_NUMBER() OVER (ORDER BY position, created_at, id) AS rn
	FROM queue_members
	WHERE session_id = ? AND status = ?
) AS ranked
WHERE queue_members.id = ranked.id AND queue_members.position <> ranked.rn`

func renumber(tx *gorm.DB, sessionID uuid.UUID) error {
	return tx.Exec(renumberSQL, sessionID, models.MemberAvailable).Error
}

func maxPosition(tx *gorm.DB, sessionID uuid.UUID) (int, error) {
	var last int
	row := tx.Model(&models.QueueMember{}).
		Where("session_id = ? AND status = ?", sessionID, models.MemberAvailable).
		Select("COALESCE(MAX(position),0)").Row()
	if err := row.Scan(&last); err != nil {
		return 0, err
	}
	return last, nil
}

func loadMember(tx *gorm.DB, id uuid.UUID) (models.QueueMember, error) {
	var m models.QueueMember
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, ErrMemberNotFound
		}
		return m, err
	}
	return m, nil
}

func setMember(tx *gorm.DB, m *models.QueueMember, status models.MemberStatus, position int) error {
	err := tx.Model(m).Updates(map[string]any{"status": status, "position": position}).Error
	if err != nil {
		return err
	}
	m.Status, m.Position = status, position
	return nil
}

// appendToTail ставит сотрудника в конец очереди: позиция = текущий максимум + 1.
func appendToTail(tx *gorm.DB, m *models.QueueMember) error {
	last, err := maxPosition(tx, m.SessionID)
	if err != nil {
		return err
	}
	return setMember(tx, m, models.MemberAvailable, last+1)
}

// Enqueue ставит сотрудника в конец очереди сессии.
// Если у сотрудника уже есть отключённое место, оно переиспользуется.
func (q *Queue) Enqueue(ctx context.Context, sessionID, staffID uuid.UUID) (models.QueueMember, error) {
	var member models.QueueMember
	if staffID == uuid.Nil {
		return member, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	err := q.mutate(ctx, "enqueue", bySession(sessionID), func(tx *gorm.DB, ch *change) error {
		if ch.session.Status != models.SessionActive {
			return fmt.Errorf("%w: session is closed", ErrSessionNotFound)
		}

		var existing []models.QueueMember
		if err := tx.Where("session_id = ? AND staff_id = ?", sessionID, staffID).
			Order("created_at ASC").Find(&existing).Error; err != nil {
			return err
		}
		var reuse *models.QueueMember
		for i := range existing {
			if existing[i].Status != models.MemberUnavailable {
				return fmt.Errorf("%w: status %s", ErrAlreadyQueued, existing[i].Status)
			}
			if reuse == nil {
				reuse = &existing[i]
			}
		}

		if reuse != nil {
			member = *reuse
			if err := appendToTail(tx, &member); err != nil {
				return err
			}
		} else {
			last, err := maxPosition(tx, sessionID)
			if err != nil {
				return err
			}
			member = models.QueueMember{
				SessionID: sessionID,
				StaffID:   staffID,
				Status:    models.MemberAvailable,
				Position:  last + 1,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}

		ch.emit(notify.MemberEnqueued, member.ID, uuid.Nil)
		return nil
	})
	return member, err
}

// DequeueAvailable отключает сотрудника: статус unavailable, оставшиеся позиции уплотняются.
// Сотрудника на перерыве тоже можно отключить.
func (q *Queue) DequeueAvailable(ctx context.Context, memberID uuid.UUID) error {
	return q.mutate(ctx, "dequeue", byMember(memberID), func(tx *gorm.DB, ch *change) error {
		m, err := loadMember(tx, memberID)
		if err != nil {
			return err
		}
		wasQueued := m.Queued()
		if !wasQueued && m.Status != models.MemberPaused {
			return fmt.Errorf("%w: status %s", ErrNotQueued, m.Status)
		}
		if err := setMember(tx, &m, models.MemberUnavailable, 0); err != nil {
			return err
		}
		if wasQueued {
			if err := renumber(tx, m.SessionID); err != nil {
				return err
			}
		}
		ch.emit(notify.MemberDequeued, m.ID, uuid.Nil)
		return nil
	})
}

// MoveToTop переносит сотрудника в начало очереди. Для первого в очереди ничего не меняется.
func (q *Queue) MoveToTop(ctx context.Context, memberID uuid.UUID) error {
	return q.move(ctx, "move_to_top", memberID, true)
}

// MoveToEnd переносит сотрудника в конец очереди. Для последнего в очереди ничего не меняется.
func (q *Queue) MoveToEnd(ctx context.Context, memberID uuid.UUID) error {
	return q.move(ctx, "move_to_end", memberID, false)
}

func (q *Queue) move(ctx context.Context, op string, memberID uuid.UUID, top bool) error {
	return q.mutate(ctx, op, byMember(memberID), func(tx *gorm.DB, ch *change) error {
		m, err := loadMember(tx, memberID)
		if err != nil {
			return err
		}
		if !m.Queued() {
			return fmt.Errorf("%w: status %s", ErrNotQueued, m.Status)
		}
		last, err := maxPosition(tx, m.SessionID)
		if err != nil {
			return err
		}
		if (top && m.Position == 1) || (!top && m.Position == last) {
			return nil
		}

		target := last + 1
		if top {
			target = 0
		}
		if err := setMember(tx, &m, models.MemberAvailable, target); err != nil {
			return err
		}
		if err := renumber(tx, m.SessionID); err != nil {
			return err
		}
		ch.emit(notify.MemberMoved, m.ID, uuid.Nil)
		return nil
	})
}

// Pause убирает свободного сотрудника из очереди на перерыв, место за ним сохраняется.
func (q *Queue) Pause(ctx context.Context, memberID uuid.UUID) error {
	return q.mutate(ctx, "pause", byMember(memberID), func(tx *gorm.DB, ch *change) error {
		m, err := loadMember(tx, memberID)
		if err != nil {
			return err
		}
		if !m.Queued() {
			return fmt.Errorf("%w: status %s", ErrNotQueued, m.Status)
		}
		if err := setMember(tx, &m, models.MemberPaused, 0); err != nil {
			return err
		}
		if err := renumber(tx, m.SessionID); err != nil {
			return err
		}
		ch.emit(notify.MemberPaused, m.ID, uuid.Nil)
		return nil
	})
}

// Resume возвращает сотрудника с перерыва в конец очереди.
func (q *Queue) Resume(ctx context.Context, memberID uuid.UUID) error {
	return q.mutate(ctx, "resume", byMember(memberID), func(tx *gorm.DB, ch *change) error {
		m, err := loadMember(tx, memberID)
		if err != nil {
			return err
		}
		switch m.Status {
		case models.MemberPaused:
		case models.MemberInAttendance:
			return ErrMemberBusy
		default:
			return fmt.Errorf("%w: status %s", ErrNotQueued, m.Status)
		}
		if err := appendToTail(tx, &m); err != nil {
			return err
		}
		ch.emit(notify.MemberResumed, m.ID, uuid.Nil)
		return nil
	})
}

// ListAvailable возвращает снимок очереди, упорядоченный по позиции.
func (q *Queue) ListAvailable(ctx context.Context, sessionID uuid.UUID) ([]models.QueueMember, error) {
	db := q.db.WithContext(ctx)
	if err := sessionExists(db, sessionID); err != nil {
		return nil, classify("list queue", err)
	}
	var members []models.QueueMember
	if err := db.Where("session_id = ? AND status = ?", sessionID, models.MemberAvailable).
		Order("position ASC").Find(&members).Error; err != nil {
		return nil, classify("list queue", err)
	}
	return members, nil
}

// Next возвращает первого в очереди.
func (q *Queue) Next(ctx context.Context, sessionID uuid.UUID) (models.QueueMember, error) {
	members, err := q.ListAvailable(ctx, sessionID)
	if err != nil {
		return models.QueueMember{}, err
	}
	if len(members) == 0 {
		return models.QueueMember{}, ErrQueueEmpty
	}
	return members[0], nil
}

// ListMembers возвращает всех включённых сотрудников: сначала очередь по позициям,
// затем занятых обслуживанием, затем ушедших на перерыв.
func (q *Queue) ListMembers(ctx context.Context, sessionID uuid.UUID) ([]models.QueueMember, error) {
	db := q.db.WithContext(ctx)
	if err := sessionExists(db, sessionID); err != nil {
		return nil, classify("list members", err)
	}
	var members []models.QueueMember
	err := db.Where("session_id = ? AND status <> ?", sessionID, models.MemberUnavailable).
		Order("CASE status WHEN 'available' THEN 0 WHEN 'in_attendance' THEN 1 ELSE 2 END").
		Order("position ASC").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, classify("list members", err)
	}
	return members, nil
}

// Member возвращает место сотрудника по идентификатору.
func (q *Queue) Member(ctx context.Context, memberID uuid.UUID) (models.QueueMember, error) {
	m, err := loadMember(q.db.WithContext(ctx), memberID)
	if err != nil {
		return m, classify("get member", err)
	}
	return m, nil
}

// Iterate обходит очередь в порядке позиций. Каждый range загружает свежий снимок через
// ListAvailable, поэтому последовательность можно обходить повторно, а внутри цикла
// можно выполнять другие операции над очередью.
func (q *Queue) Iterate(ctx context.Context, sessionID uuid.UUID) iter.Seq2[models.QueueMember, error] {
	return func(yield func(models.QueueMember, error) bool) {
		members, err := q.ListAvailable(ctx, sessionID)
		if err != nil {
			yield(models.QueueMember{}, err)
			return
		}
		for _, m := range members {
			if !yield(m, nil) {
				return
			}
		}
	}
}
