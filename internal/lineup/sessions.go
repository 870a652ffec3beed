package lineup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lineup/internal/models"
	"lineup/internal/notify"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sessions управляет активной сессией магазина.
type Sessions struct {
	*core
}

// GetOrCreateActive возвращает активную сессию магазина, создавая её при необходимости.
// При одновременных вызовах создаётся ровно одна сессия: проигравшая вставка
// упирается в частичный уникальный индекс и перечитывает победителя.
func (s *Sessions) GetOrCreateActive(ctx context.Context, storeID uuid.UUID) (session models.Session, err error) {
	defer observe("get_or_create_session", time.Now(), &err)

	if storeID == uuid.Nil {
		return session, fmt.Errorf("%w: store id is required", ErrInvalidInput)
	}
	db := s.db.WithContext(ctx)

	session, err = s.findActive(db, storeID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return session, classify("get or create session", err)
	}

	session = models.Session{StoreID: storeID, Status: models.SessionActive}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&session)
	if res.Error != nil {
		return session, classify("get or create session", res.Error)
	}
	if res.RowsAffected == 0 {
		session, err = s.findActive(db, storeID)
		if err != nil {
			return session, classify("get or create session", err)
		}
		return session, nil
	}

	s.log.Info("Открыта новая сессия", "store_id", storeID, "session_id", session.ID)
	ch := &change{session: session, at: s.clock()}
	ch.emit(notify.SessionOpened, uuid.Nil, uuid.Nil)
	s.publish(ctx, ch.events)
	return session, nil
}

// Get возвращает сессию по идентификатору.
func (s *Sessions) Get(ctx context.Context, id uuid.UUID) (models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session, ErrSessionNotFound
	}
	if err != nil {
		return session, classify("get session", err)
	}
	return session, nil
}

func (s *Sessions) findActive(db *gorm.DB, storeID uuid.UUID) (models.Session, error) {
	var session models.Session
	err := db.Where("store_id = ? AND status = ?", storeID, models.SessionActive).First(&session).Error
	return session, err
}
