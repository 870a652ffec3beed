package lineup

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound          = errors.New("lineup: member not found")
	ErrAlreadyQueued           = errors.New("lineup: staff member already queued")
	ErrNotQueued               = errors.New("lineup: member is not queued")
	ErrMemberBusy              = errors.New("lineup: member is in attendance")
	ErrAttendanceNotInProgress = errors.New("lineup: attendance not in progress")
	ErrAlreadyFinalized        = errors.New("lineup: attendance already finalized")
	ErrInvalidOutcome          = errors.New("lineup: invalid outcome")
	ErrConcurrencyConflict     = errors.New("lineup: concurrency conflict")

	ErrSessionNotFound    = errors.New("lineup: session not found")
	ErrAttendanceNotFound = errors.New("lineup: attendance not found")
	ErrQueueEmpty         = errors.New("lineup: queue is empty")
	ErrInvalidInput       = errors.New("lineup: invalid input")
)

var domainErrors = []error{
	ErrMemberNotFound,
	ErrAlreadyQueued,
	ErrNotQueued,
	ErrMemberBusy,
	ErrAttendanceNotInProgress,
	ErrAlreadyFinalized,
	ErrInvalidOutcome,
	ErrConcurrencyConflict,
	ErrSessionNotFound,
	ErrAttendanceNotFound,
	ErrQueueEmpty,
	ErrInvalidInput,
}

// Коды PostgreSQL, при которых операцию безопасно повторить целиком.
var conflictCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
	"23505": true, // unique_violation
}

// classify приводит ошибку хранилища к ошибкам пакета. Доменные ошибки возвращаются как есть.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s: %v", ErrConcurrencyConflict, op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && conflictCodes[pgErr.Code] {
		return fmt.Errorf("%w: %s: %v", ErrConcurrencyConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Code возвращает короткий код ошибки для метрик и ответов API.
func Code(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMemberNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, ErrSessionNotFound):
		return "SESSION_NOT_FOUND"
	case errors.Is(err, ErrAttendanceNotFound):
		return "ATTENDANCE_NOT_FOUND"
	case errors.Is(err, ErrAlreadyQueued):
		return "ALREADY_QUEUED"
	case errors.Is(err, ErrNotQueued):
		return "NOT_QUEUED"
	case errors.Is(err, ErrMemberBusy):
		return "MEMBER_BUSY"
	case errors.Is(err, ErrAttendanceNotInProgress):
		return "ATTENDANCE_NOT_IN_PROGRESS"
	case errors.Is(err, ErrAlreadyFinalized):
		return "ALREADY_FINALIZED"
	case errors.Is(err, ErrInvalidOutcome):
		return "INVALID_OUTCOME"
	case errors.Is(err, ErrConcurrencyConflict):
		return "CONCURRENCY_CONFLICT"
	case errors.Is(err, ErrQueueEmpty):
		return "QUEUE_EMPTY"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION_ERROR"
	default:
		return "DB_ERROR"
	}
}
