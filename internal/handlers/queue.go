package handlers

import (
	"net/http"

	"lineup/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnqueueRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid" example:"9a7d1c44-2a61-4f0b-9a52-6b8f1b2e4c10"`
}

// GetOrCreateSession возвращает активную сессию магазина, создавая её при необходимости
//
//	@Summary		Активная сессия магазина
//	@Description	Идемпотентно: повторные вызовы возвращают ту же сессию
//	@Tags			sessions
//	@Produce		json
//	@Param			storeId	path		string	true	"ID магазина"
//	@Success		200		{object}	models.Session
//	@Failure		400		{object}	response.ErrorResponse	"Некорректный ID (VALIDATION_ERROR)"
//	@Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
//	@Router			/api/stores/{storeId}/session [post]
func (h *Handler) GetOrCreateSession(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	session, err := h.svc.Sessions.GetOrCreateActive(c.Request.Context(), storeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListLossReasons возвращает активные причины потерь магазина и глобальные
//
//	@Summary	Причины потерь
//	@Tags		loss-reasons
//	@Produce	json
//	@Param		storeId	path		string	true	"ID магазина"
//	@Success	200		{array}		models.LossReason
//	@Failure	400		{object}	response.ErrorResponse
//	@Router		/api/stores/{storeId}/loss-reasons [get]
func (h *Handler) ListLossReasons(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}
	reasons, err := h.svc.LossReasons.List(c.Request.Context(), storeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reasons)
}

// ListQueue возвращает свободных сотрудников в порядке очереди
//
//	@Summary	Очередь сессии
//	@Tags		queue
//	@Produce	json
//	@Param		sessionId	path		string	true	"ID сессии"
//	@Success	200			{array}		models.QueueMember
//	@Failure	404			{object}	response.ErrorResponse	"Сессия не найдена (SESSION_NOT_FOUND)"
//	@Router		/api/sessions/{sessionId}/queue [get]
func (h *Handler) ListQueue(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	members, err := h.svc.Queue.ListAvailable(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// NextInQueue возвращает сотрудника, чья очередь обслуживать следующего покупателя
//
//	@Summary	Следующий в очереди
//	@Tags		queue
//	@Produce	json
//	@Param		sessionId	path		string	true	"ID сессии"
//	@Success	200			{object}	models.QueueMember
//	@Failure	404			{object}	response.ErrorResponse	"Очередь пуста (QUEUE_EMPTY)"
//	@Router		/api/sessions/{sessionId}/queue/next [get]
func (h *Handler) NextInQueue(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	member, err := h.svc.Queue.Next(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// ListMembers возвращает всех сотрудников сессии, сгруппированных по статусу
//
//	@Summary	Сотрудники сессии
//	@Tags		queue
//	@Produce	json
//	@Param		sessionId	path		string	true	"ID сессии"
//	@Success	200			{array}		models.QueueMember
//	@Failure	404			{object}	response.ErrorResponse
//	@Router		/api/sessions/{sessionId}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	members, err := h.svc.Queue.ListMembers(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Enqueue ставит сотрудника в конец очереди
//
//	@Summary	Встать в очередь
//	@Tags		queue
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string			true	"ID сессии"
//	@Param		input		body		EnqueueRequest	true	"Сотрудник"
//	@Success	201			{object}	models.QueueMember
//	@Failure	400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
//	@Failure	404			{object}	response.ErrorResponse	"Сессия не найдена (SESSION_NOT_FOUND)"
//	@Failure	409			{object}	response.ErrorResponse	"Уже в очереди (ALREADY_QUEUED)"
//	@Router		/api/sessions/{sessionId}/members [post]
func (h *Handler) Enqueue(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	var req EnqueueRequest
	if !bind(c, &req) {
		return
	}
	member, err := h.svc.Queue.Enqueue(c.Request.Context(), sessionID, uuid.MustParse(req.StaffID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// memberAction выполняет команду над сотрудником очереди и отвечает сообщением.
func (h *Handler) memberAction(c *gin.Context, message string, action func(c *gin.Context, id uuid.UUID) error) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	if err := action(c, memberID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: message})
}

// Dequeue убирает свободного сотрудника из очереди (отключает его место)
//
//	@Summary	Выйти из очереди
//	@Tags		queue
//	@Produce	json
//	@Param		memberId	path		string	true	"ID места в очереди"
//	@Success	200			{object}	response.SuccessResponse
//	@Failure	404			{object}	response.ErrorResponse	"Не найден (MEMBER_NOT_FOUND)"
//	@Failure	409			{object}	response.ErrorResponse	"Не в очереди (NOT_QUEUED)"
//	@Router		/api/members/{memberId} [delete]
func (h *Handler) Dequeue(c *gin.Context) {
	h.memberAction(c, "Сотрудник удалён из очереди", func(c *gin.Context, id uuid.UUID) error {
		return h.svc.Queue.DequeueAvailable(c.Request.Context(), id)
	})
}

// Pause отправляет сотрудника на перерыв
//
//	@Summary	Перерыв
//	@Tags		queue
//	@Produce	json
//	@Param		memberId	path		string	true	"ID места в очереди"
//	@Success	200			{object}	response.SuccessResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Failure	409			{object}	response.ErrorResponse	"Не в очереди (NOT_QUEUED)"
//	@Router		/api/members/{memberId}/pause [post]
func (h *Handler) Pause(c *gin.Context) {
	h.memberAction(c, "Сотрудник на перерыве", func(c *gin.Context, id uuid.UUID) error {
		return h.svc.Queue.Pause(c.Request.Context(), id)
	})
}

// Resume возвращает сотрудника с перерыва в конец очереди
//
//	@Summary	Вернуться с перерыва
//	@Tags		queue
//	@Produce	json
//	@Param		memberId	path		string	true	"ID места в очереди"
//	@Success	200			{object}	response.SuccessResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Failure	409			{object}	response.ErrorResponse	"Занят или не на перерыве (MEMBER_BUSY, NOT_QUEUED)"
//	@Router		/api/members/{memberId}/resume [post]
func (h *Handler) Resume(c *gin.Context) {
	h.memberAction(c, "Сотрудник вернулся в очередь", func(c *gin.Context, id uuid.UUID) error {
		return h.svc.Queue.Resume(c.Request.Context(), id)
	})
}

// MoveToTop ставит сотрудника в начало очереди
//
//	@Summary	В начало очереди
//	@Tags		queue
//	@Produce	json
//	@Param		memberId	path		string	true	"ID места в очереди"
//	@Success	200			{object}	response.SuccessResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Failure	409			{object}	response.ErrorResponse	"Не в очереди (NOT_QUEUED)"
//	@Router		/api/members/{memberId}/move-to-top [post]
func (h *Handler) MoveToTop(c *gin.Context) {
	h.memberAction(c, "Сотрудник перемещён в начало очереди", func(c *gin.Context, id uuid.UUID) error {
		return h.svc.Queue.MoveToTop(c.Request.Context(), id)
	})
}

// MoveToEnd ставит сотрудника в конец очереди
//
//	@Summary	В конец очереди
//	@Tags		queue
//	@Produce	json
//	@Param		memberId	path		string	true	"ID места в очереди"
//	@Success	200			{object}	response.SuccessResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Failure	409			{object}	response.ErrorResponse	"Не в очереди (NOT_QUEUED)"
//	@Router		/api/members/{memberId}/move-to-end [post]
func (h *Handler) MoveToEnd(c *gin.Context) {
	h.memberAction(c, "Сотрудник перемещён в конец очереди", func(c *gin.Context, id uuid.UUID) error {
		return h.svc.Queue.MoveToEnd(c.Request.Context(), id)
	})
}

// SessionVersion возвращает счётчик изменений сессии
//
//	@Summary		Версия сессии
//	@Description	Растёт после каждого изменения очереди или обслуживаний сессии
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionId	path		string	true	"ID сессии"
//	@Success		200			{object}	response.VersionResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/api/sessions/{sessionId}/version [get]
func (h *Handler) SessionVersion(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	if _, err := h.svc.Sessions.Get(c.Request.Context(), sessionID); err != nil {
		h.fail(c, err)
		return
	}
	v, err := h.versions.Version(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.VersionResponse{SessionID: sessionID.String(), Version: v})
}
