package response

import "time"

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: staff_id: invalid UUID length: 3
	Details string `json:"details,omitempty"`
}

// VersionResponse: счётчик изменений сессии для клиентов, опрашивающих сервер.
// Клиент перечитывает состояние, когда значение меняется.
type VersionResponse struct {
	SessionID string `json:"session_id" example:"5b0f2f0e-8f52-4a8e-9a52-2f6a2a3f0b1c"`
	Version   int64  `json:"version" example:"42"`
}

// HealthResponse представляет состояние сервиса
type HealthResponse struct {
	Status   string    `json:"status" example:"ok"`
	Database string    `json:"database" example:"ok"`
	Redis    string    `json:"redis,omitempty" example:"disabled"`
	Time     time.Time `json:"time"`
}
