package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"lineup/internal/lineup"
	"lineup/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// VersionSource отдаёт счётчик изменений сессии.
type VersionSource interface {
	Version(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

// Deps: зависимости HTTP-слоя.
type Deps struct {
	Service  *lineup.Service
	Versions VersionSource
	DB       *gorm.DB
	Redis    *redis.Client // nil, если Redis отключён
	Location *time.Location
	Logger   *slog.Logger
}

type Handler struct {
	svc      *lineup.Service
	versions VersionSource
	db       *gorm.DB
	redis    *redis.Client
	loc      *time.Location
	log      *slog.Logger
}

func New(d Deps) *Handler {
	h := &Handler{
		svc:      d.Service,
		versions: d.Versions,
		db:       d.DB,
		redis:    d.Redis,
		loc:      d.Location,
		log:      d.Logger,
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// Register подключает маршруты API к роутеру.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")

	stores := api.Group("/stores/:storeId")
	{
		stores.POST("/session", h.GetOrCreateSession)
		stores.GET("/loss-reasons", h.ListLossReasons)
	}

	sessions := api.Group("/sessions/:sessionId")
	{
		sessions.GET("/queue", h.ListQueue)
		sessions.GET("/queue/next", h.NextInQueue)
		sessions.GET("/members", h.ListMembers)
		sessions.POST("/members", h.Enqueue)
		sessions.GET("/attendances", h.ListAttendances)
		sessions.POST("/attendances/manual", h.CreateManualAttendance)
		sessions.GET("/metrics", h.SessionMetrics)
		sessions.GET("/version", h.SessionVersion)
	}

	members := api.Group("/members/:memberId")
	{
		members.DELETE("", h.Dequeue)
		members.POST("/pause", h.Pause)
		members.POST("/resume", h.Resume)
		members.POST("/move-to-top", h.MoveToTop)
		members.POST("/move-to-end", h.MoveToEnd)
		members.POST("/attendances", h.StartAttendance)
	}

	attendances := api.Group("/attendances/:attendanceId")
	{
		attendances.GET("", h.GetAttendance)
		attendances.PATCH("", h.EditAttendance)
		attendances.POST("/finalize", h.FinalizeAttendance)
		attendances.POST("/transfer", h.TransferAttendance)
		attendances.POST("/sale-record", h.LinkSaleRecord)
	}
}

var errorMessages = map[string]string{
	"MEMBER_NOT_FOUND":           "Сотрудник в очереди не найден",
	"SESSION_NOT_FOUND":          "Сессия не найдена",
	"ATTENDANCE_NOT_FOUND":       "Обслуживание не найдено",
	"ALREADY_QUEUED":             "Сотрудник уже состоит в очереди",
	"NOT_QUEUED":                 "Сотрудник не стоит в очереди",
	"MEMBER_BUSY":                "Сотрудник занят обслуживанием",
	"ATTENDANCE_NOT_IN_PROGRESS": "Обслуживание не выполняется",
	"ALREADY_FINALIZED":          "Обслуживание уже завершено",
	"INVALID_OUTCOME":            "Некорректный итог обслуживания",
	"CONCURRENCY_CONFLICT":       "Конфликт одновременных изменений, повторите запрос",
	"QUEUE_EMPTY":                "В очереди нет свободных сотрудников",
	"VALIDATION_ERROR":           "Ошибка валидации данных",
	"DB_ERROR":                   "Ошибка сервера",
}

func statusFor(code string) int {
	switch code {
	case "MEMBER_NOT_FOUND", "SESSION_NOT_FOUND", "ATTENDANCE_NOT_FOUND", "QUEUE_EMPTY":
		return http.StatusNotFound
	case "ALREADY_QUEUED", "NOT_QUEUED", "MEMBER_BUSY", "ATTENDANCE_NOT_IN_PROGRESS",
		"ALREADY_FINALIZED", "CONCURRENCY_CONFLICT":
		return http.StatusConflict
	case "INVALID_OUTCOME":
		return http.StatusUnprocessableEntity
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail переводит ошибку сервиса в ответ API.
func (h *Handler) fail(c *gin.Context, err error) {
	code := lineup.Code(err)
	status := statusFor(code)
	if code == "CONCURRENCY_CONFLICT" {
		c.Header("Retry-After", "0")
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("Ошибка обработки запроса", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, response.ErrorResponse{
		Code:    code,
		Message: errorMessages[code],
		Details: err.Error(),
	})
}

func badRequest(c *gin.Context, message string, err error) {
	resp := response.ErrorResponse{Code: "VALIDATION_ERROR", Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// pathID разбирает UUID из параметра пути; при ошибке отвечает 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Некорректный идентификатор "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Ошибка валидации данных", err)
		return false
	}
	return true
}

// Health проверяет доступность базы данных и Redis.
//
//	@Summary	Состояние сервиса
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	response.HealthResponse
//	@Failure	503	{object}	response.HealthResponse
//	@Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok", Database: "ok", Redis: "disabled", Time: time.Now().UTC()}
	if err := h.pingDB(ctx); err != nil {
		resp.Status, resp.Database = "degraded", err.Error()
	}
	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Status, resp.Redis = "degraded", err.Error()
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *Handler) pingDB(ctx context.Context) error {
	if h.db == nil {
		return errors.New("database is not configured")
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// RequestLogger пишет в лог каждый запрос.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP запрос", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP запрос", attrs...)
		default:
			log.Info("HTTP запрос", attrs...)
		}
	}
}
