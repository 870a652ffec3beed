package tasks

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"lineup/internal/lineup"
	"lineup/internal/storage"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *lineup.Service, *Scheduler) {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return db, lineup.New(db, lineup.WithLogger(log)), NewScheduler(db, log, 45*time.Minute)
}

func TestFlagLongAttendances(t *testing.T) {
	_, svc, s := setup(t)
	ctx := context.Background()

	session, err := svc.Sessions.GetOrCreateActive(ctx, uuid.New())
	require.NoError(t, err)
	m, err := svc.Queue.Enqueue(ctx, session.ID, uuid.New())
	require.NoError(t, err)
	_, err = svc.Attendances.Start(ctx, m.ID, "")
	require.NoError(t, err)

	n, err := s.FlagLongAttendances(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	n, err = s.FlagLongAttendances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := `
# HELP lineup_long_running_attendances Attendances in progress for longer than the configured threshold
# TYPE lineup_long_running_attendances gauge
lineup_long_running_attendances 1
`
	assert.NoError(t, testutil.GatherAndCompare(prometheus.DefaultGatherer,
		strings.NewReader(expected), "lineup_long_running_attendances"))
}

func TestRefreshQueueGauges(t *testing.T) {
	_, svc, s := setup(t)
	ctx := context.Background()

	session, err := svc.Sessions.GetOrCreateActive(ctx, uuid.New())
	require.NoError(t, err)
	for range 3 {
		_, err := svc.Queue.Enqueue(ctx, session.ID, uuid.New())
		require.NoError(t, err)
	}

	require.NoError(t, s.RefreshQueueGauges(ctx))

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "lineup_queue_members")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInitSchedulerRejectsBadSpec(t *testing.T) {
	_, _, s := setup(t)

	_, err := InitScheduler(context.Background(), s, "not a spec", "0 */5 * * * *")
	assert.Error(t, err)
}

func TestInitSchedulerRunsJobs(t *testing.T) {
	_, _, s := setup(t)

	c, err := InitScheduler(context.Background(), s, "* * * * * *", "0 0 3 * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)
	<-c.Stop().Done()
}
