package monitoring

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineup_operations_total",
			Help: "Total queue and attendance operations",
		},
		[]string{"operation", "status"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lineup_operation_duration_seconds",
			Help:    "Duration of queue and attendance operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	queueMembers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lineup_queue_members",
			Help: "Current number of queue members per session and status",
		},
		[]string{"session_id", "status"},
	)

	attendanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lineup_attendance_duration_seconds",
			Help:    "Duration of finished attendances",
			Buckets: prometheus.ExponentialBuckets(30, 2, 10),
		},
		[]string{"result"},
	)

	longAttendances = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lineup_long_running_attendances",
			Help: "Attendances in progress for longer than the configured threshold",
		},
	)

	publishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lineup_publish_failures_total",
			Help: "Change events that could not be published",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lineup_active_goroutines",
			Help: "Current number of goroutines",
		},
	)
)

// TrackOperation считает вызов операции с итогом ok или кодом ошибки.
func TrackOperation(operation, status string, took time.Duration) {
	operations.WithLabelValues(operation, status).Inc()
	operationDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// SetQueueMembers выставляет размер очереди сессии по статусу.
func SetQueueMembers(sessionID, status string, n int) {
	queueMembers.WithLabelValues(sessionID, status).Set(float64(n))
}

// ResetQueueMembers сбрасывает значения для закрытых сессий перед новым снимком.
func ResetQueueMembers() {
	queueMembers.Reset()
}

func ObserveAttendance(result string, took time.Duration) {
	attendanceDuration.WithLabelValues(result).Observe(took.Seconds())
}

func SetLongRunningAttendances(n int) {
	longAttendances.Set(float64(n))
}

func TrackPublishFailure() {
	publishFailures.Inc()
}

func CollectGoroutines() {
	goroutineCount.Set(float64(runtime.NumGoroutine()))
}
