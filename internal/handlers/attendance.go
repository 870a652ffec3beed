package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"lineup/internal/lineup"
	"lineup/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutcomeRequest: итог обслуживания: продажа с суммой или потеря с причиной.
type OutcomeRequest struct {
	Result       string           `json:"result" binding:"required,oneof=sale loss" example:"sale"`
	SaleValue    *decimal.Decimal `json:"sale_value,omitempty" swaggertype:"string" example:"149.90"`
	LossReasonID *string          `json:"loss_reason_id,omitempty" binding:"omitempty,uuid"`
	Notes        string           `json:"notes,omitempty" binding:"max=1000"`
}

func (r OutcomeRequest) input() lineup.OutcomeInput {
	in := lineup.OutcomeInput{
		Result:    models.OutcomeResult(r.Result),
		SaleValue: r.SaleValue,
		Notes:     r.Notes,
	}
	if r.LossReasonID != nil {
		id := uuid.MustParse(*r.LossReasonID)
		in.LossReasonID = &id
	}
	return in
}

type StartAttendanceRequest struct {
	CustomerName string `json:"customer_name" binding:"max=255" example:"Maria"`
}

type TransferRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	Reason  string `json:"reason" binding:"max=500" example:"Cliente pediu outro vendedor"`
}

type EditAttendanceRequest struct {
	CustomerName *string         `json:"customer_name,omitempty" binding:"omitempty,max=255"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	EndedAt      *time.Time      `json:"ended_at,omitempty"`
	Outcome      *OutcomeRequest `json:"outcome,omitempty"`
}

type ManualAttendanceRequest struct {
	StaffID      string         `json:"staff_id" binding:"required,uuid"`
	CustomerName string         `json:"customer_name" binding:"max=255"`
	StartedAt    time.Time      `json:"started_at" binding:"required"`
	EndedAt      time.Time      `json:"ended_at" binding:"required"`
	Outcome      OutcomeRequest `json:"outcome"`
}

type SaleRecordRequest struct {
	SaleRecordID string `json:"sale_record_id" binding:"required,max=255" example:"PDV-2026-000123"`
}

// StartAttendance начинает обслуживание покупателя сотрудником из очереди
//
//	@Summary		Начать обслуживание
//	@Description	Сотрудник атомарно покидает очередь и получает новое обслуживание
//	@Tags			attendances
//	@Accept			json
//	@Produce		json
//	@Param			memberId	path		string					true	"ID места в очереди"
//	@Param			input		body		StartAttendanceRequest	false	"Покупатель"
//	@Success		201			{object}	models.Attendance
//	@Failure		404			{object}	response.ErrorResponse	"Не найден (MEMBER_NOT_FOUND)"
//	@Failure		409			{object}	response.ErrorResponse	"Занят (MEMBER_BUSY)"
//	@Router			/api/members/{memberId}/attendances [post]
func (h *Handler) StartAttendance(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	// Тело необязательно: пустой запрос означает покупателя без имени.
	var req StartAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Ошибка валидации данных", err)
		return
	}
	a, err := h.svc.Attendances.Start(c.Request.Context(), memberID, req.CustomerName)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GetAttendance возвращает обслуживание с итогом
//
//	@Summary	Обслуживание
//	@Tags		attendances
//	@Produce	json
//	@Param		attendanceId	path		string	true	"ID обслуживания"
//	@Success	200				{object}	models.Attendance
//	@Failure	404				{object}	response.ErrorResponse	"Не найдено (ATTENDANCE_NOT_FOUND)"
//	@Router		/api/attendances/{attendanceId} [get]
func (h *Handler) GetAttendance(c *gin.Context) {
	id, ok := pathID(c, "attendanceId")
	if !ok {
		return
	}
	a, err := h.svc.Attendances.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// FinalizeAttendance завершает обслуживание и возвращает сотрудника в конец очереди
//
//	@Summary	Завершить обслуживание
//	@Tags		attendances
//	@Accept		json
//	@Produce	json
//	@Param		attendanceId	path		string			true	"ID обслуживания"
//	@Param		input			body		OutcomeRequest	true	"Итог"
//	@Success	200				{object}	models.Attendance
//	@Failure	404				{object}	response.ErrorResponse	"Не найдено (ATTENDANCE_NOT_FOUND)"
//	@Failure	409				{object}	response.ErrorResponse	"Уже завершено (ALREADY_FINALIZED)"
//	@Failure	422				{object}	response.ErrorResponse	"Некорректный итог (INVALID_OUTCOME)"
//	@Router		/api/attendances/{attendanceId}/finalize [post]
func (h *Handler) FinalizeAttendance(c *gin.Context) {
	id, ok := pathID(c, "attendanceId")
	if !ok {
		return
	}
	var req OutcomeRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Attendances.Finalize(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// TransferAttendance передаёт обслуживание другому сотруднику
//
//	@Summary	Передать обслуживание
//	@Tags		attendances
//	@Accept		json
//	@Produce	json
//	@Param		attendanceId	path		string			true	"ID обслуживания"
//	@Param		input			body		TransferRequest	true	"Новый сотрудник"
//	@Success	200				{object}	models.Attendance
//	@Failure	404				{object}	response.ErrorResponse
//	@Failure	409				{object}	response.ErrorResponse	"Не выполняется или сотрудник занят (ATTENDANCE_NOT_IN_PROGRESS, MEMBER_BUSY)"
//	@Router		/api/attendances/{attendanceId}/transfer [post]
func (h *Handler) TransferAttendance(c *gin.Context) {
	id, ok := pathID(c, "attendanceId")
	if !ok {
		return
	}
	var req TransferRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Attendances.Transfer(c.Request.Context(), id, uuid.MustParse(req.StaffID), req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// EditAttendance исправляет данные обслуживания
//
//	@Summary	Исправить обслуживание
//	@Tags		attendances
//	@Accept		json
//	@Produce	json
//	@Param		attendanceId	path		string					true	"ID обслуживания"
//	@Param		input			body		EditAttendanceRequest	true	"Изменения"
//	@Success	200				{object}	models.Attendance
//	@Failure	400				{object}	response.ErrorResponse
//	@Failure	404				{object}	response.ErrorResponse
//	@Failure	422				{object}	response.ErrorResponse	"Некорректный итог (INVALID_OUTCOME)"
//	@Router		/api/attendances/{attendanceId} [patch]
func (h *Handler) EditAttendance(c *gin.Context) {
	id, ok := pathID(c, "attendanceId")
	if !ok {
		return
	}
	var req EditAttendanceRequest
	if !bind(c, &req) {
		return
	}
	patch := lineup.AttendancePatch{
		CustomerName: req.CustomerName,
		StartedAt:    req.StartedAt,
		EndedAt:      req.EndedAt,
	}
	if req.Outcome != nil {
		in := req.Outcome.input()
		patch.Outcome = &in
	}
	a, err := h.svc.Attendances.Edit(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// LinkSaleRecord связывает завершённую продажу с документом продажи
//
//	@Summary	Привязать документ продажи
//	@Tags		attendances
//	@Accept		json
//	@Produce	json
//	@Param		attendanceId	path		string				true	"ID обслуживания"
//	@Param		input			body		SaleRecordRequest	true	"Документ"
//	@Success	200				{object}	models.Attendance
//	@Failure	404				{object}	response.ErrorResponse
//	@Failure	422				{object}	response.ErrorResponse	"Обслуживание не закончилось продажей (INVALID_OUTCOME)"
//	@Router		/api/attendances/{attendanceId}/sale-record [post]
func (h *Handler) LinkSaleRecord(c *gin.Context) {
	id, ok := pathID(c, "attendanceId")
	if !ok {
		return
	}
	var req SaleRecordRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Attendances.LinkSaleRecord(c.Request.Context(), id, req.SaleRecordID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CreateManualAttendance записывает обслуживание задним числом
//
//	@Summary	Ручная запись обслуживания
//	@Tags		attendances
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string					true	"ID сессии"
//	@Param		input		body		ManualAttendanceRequest	true	"Обслуживание"
//	@Success	201			{object}	models.Attendance
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Failure	422			{object}	response.ErrorResponse
//	@Router		/api/sessions/{sessionId}/attendances/manual [post]
func (h *Handler) CreateManualAttendance(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	var req ManualAttendanceRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Attendances.CreateManual(c.Request.Context(), lineup.ManualAttendanceInput{
		SessionID:    sessionID,
		StaffID:      uuid.MustParse(req.StaffID),
		CustomerName: req.CustomerName,
		StartedAt:    req.StartedAt,
		EndedAt:      req.EndedAt,
		Outcome:      req.Outcome.input(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAttendances возвращает обслуживания сессии
//
//	@Summary		Обслуживания сессии
//	@Description	По умолчанию только текущие (status=in_progress)
//	@Tags			attendances
//	@Produce		json
//	@Param			sessionId	path		string	true	"ID сессии"
//	@Param			status		query		string	false	"in_progress | finished | all"
//	@Param			staff_id	query		string	false	"ID сотрудника"
//	@Param			from		query		string	false	"Начало окна, RFC3339"
//	@Param			to			query		string	false	"Конец окна, RFC3339"
//	@Success		200			{array}		models.Attendance
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/api/sessions/{sessionId}/attendances [get]
func (h *Handler) ListAttendances(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}

	filter := lineup.AttendanceFilter{SessionID: sessionID}
	switch status := c.DefaultQuery("status", string(models.AttendanceInProgress)); status {
	case string(models.AttendanceInProgress), string(models.AttendanceFinished):
		filter.Status = models.AttendanceStatus(status)
	case "all":
	default:
		badRequest(c, "Некорректный статус", fmt.Errorf("unknown status %q", status))
		return
	}
	if staff := c.Query("staff_id"); staff != "" {
		id, err := uuid.Parse(staff)
		if err != nil {
			badRequest(c, "Некорректный ID сотрудника", err)
			return
		}
		filter.StaffID = id
	}
	from, to, err := h.window(c)
	if err != nil {
		badRequest(c, "Некорректное окно времени", err)
		return
	}
	filter.From, filter.To = from, to

	list, err := h.svc.Attendances.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SessionMetrics возвращает показатели конверсии сессии
//
//	@Summary		Показатели сессии
//	@Description	Окно задаётся from/to (RFC3339) или date (YYYY-MM-DD в часовом поясе магазина)
//	@Tags			metrics
//	@Produce		json
//	@Param			sessionId	path		string	true	"ID сессии"
//	@Param			from		query		string	false	"Начало окна, RFC3339"
//	@Param			to			query		string	false	"Конец окна, RFC3339"
//	@Param			date		query		string	false	"День, YYYY-MM-DD"
//	@Success		200			{object}	lineup.Summary
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/api/sessions/{sessionId}/metrics [get]
func (h *Handler) SessionMetrics(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	from, to, err := h.window(c)
	if err != nil {
		badRequest(c, "Некорректное окно времени", err)
		return
	}
	summary, err := h.svc.Metrics.Compute(c.Request.Context(), lineup.MetricsQuery{
		SessionID: sessionID,
		From:      from,
		To:        to,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// window читает окно времени из from/to или date. Пустые значения не ограничивают окно.
func (h *Handler) window(c *gin.Context) (from, to time.Time, err error) {
	if date := c.Query("date"); date != "" {
		if c.Query("from") != "" || c.Query("to") != "" {
			return from, to, errors.New("date cannot be combined with from/to")
		}
		day, err := time.ParseInLocation(time.DateOnly, date, h.loc)
		if err != nil {
			return from, to, fmt.Errorf("date: %w", err)
		}
		return day, day.AddDate(0, 0, 1), nil
	}
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(time.RFC3339, s); err != nil {
			return from, to, fmt.Errorf("from: %w", err)
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(time.RFC3339, s); err != nil {
			return from, to, fmt.Errorf("to: %w", err)
		}
	}
	return from, to, nil
}
