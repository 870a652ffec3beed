package lineup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("op", nil))

	wrapped := fmt.Errorf("%w: status paused", ErrNotQueued)
	assert.Same(t, wrapped, classify("dequeue", wrapped))

	for _, code := range []string{"40001", "40P01", "55P03", "23505"} {
		err := classify("start", &pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, ErrConcurrencyConflict, code)
	}

	err := classify("enqueue", gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)

	err = classify("enqueue", &pgconn.PgError{Code: "23503"})
	assert.NotErrorIs(t, err, ErrConcurrencyConflict)

	cause := errors.New("connection reset")
	err = classify("finalize", cause)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "finalize: connection reset")
}

func TestCode(t *testing.T) {
	cases := map[error]string{
		nil:                        "ok",
		ErrMemberNotFound:          "MEMBER_NOT_FOUND",
		ErrSessionNotFound:         "SESSION_NOT_FOUND",
		ErrAttendanceNotFound:      "ATTENDANCE_NOT_FOUND",
		ErrAlreadyQueued:           "ALREADY_QUEUED",
		ErrNotQueued:               "NOT_QUEUED",
		ErrMemberBusy:              "MEMBER_BUSY",
		ErrAttendanceNotInProgress: "ATTENDANCE_NOT_IN_PROGRESS",
		ErrAlreadyFinalized:        "ALREADY_FINALIZED",
		ErrInvalidOutcome:          "INVALID_OUTCOME",
		ErrConcurrencyConflict:     "CONCURRENCY_CONFLICT",
		ErrQueueEmpty:              "QUEUE_EMPTY",
		ErrInvalidInput:            "VALIDATION_ERROR",
		errors.New("boom"):         "DB_ERROR",
	}
	for err, want := range cases {
		assert.Equal(t, want, Code(err))
	}

	assert.Equal(t, "INVALID_OUTCOME", Code(fmt.Errorf("%w: sale value is required", ErrInvalidOutcome)))
}
