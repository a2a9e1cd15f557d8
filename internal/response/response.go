package response

import "time"

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: DEPARTMENT_NOT_FOUND
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Отделение не найдено
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле department_id обязательно
	Details string `json:"details,omitempty"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	AccessToken string `json:"access_token"`

	// JWT токен для обновления access токена
	RefreshToken string `json:"refresh_token"`
}

type UserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role" example:"patient"`
}

// AuthResponse возвращается после регистрации и входа
type AuthResponse struct {
	Message string `json:"message"`
	TokenResponse
	User UserInfo `json:"user"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// WaitTimeResponse - оценка ожидания в отделении
type WaitTimeResponse struct {
	DepartmentID         uint      `json:"department_id"`
	Department           string    `json:"department" example:"Cardiology"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes" example:"50"`
	PeopleAhead          int       `json:"people_ahead" example:"5"`
	ConfidencePercent    int       `json:"confidence_percent" example:"80"`
	// Ориентировочное время приёма, если встать в очередь сейчас
	BestTime             time.Time `json:"best_time"`
}

// JoinQueueResponse - выданный талон
type JoinQueueResponse struct {
	Message              string    `json:"message"`
	EntryID              string    `json:"entry_id"`
	TokenNumber          string    `json:"token_number" example:"D01001"`
	Position             int       `json:"position" example:"1"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes" example:"0"`
	ConfidencePercent    int       `json:"confidence_percent" example:"70"`
	CheckInTime          time.Time `json:"check_in_time"`
}

// PositionResponse - текущая запись пациента.
// position - снимок на момент вступления, people_ahead - сколько ожидающих впереди сейчас.
type PositionResponse struct {
	EntryID              string     `json:"entry_id"`
	TokenNumber          string     `json:"token_number"`
	DepartmentID         uint       `json:"department_id"`
	Department           string     `json:"department"`
	Position             int        `json:"position"`
	PeopleAhead          int        `json:"people_ahead"`
	Status               string     `json:"status" example:"waiting"`
	EstimatedWaitMinutes int        `json:"estimated_wait_minutes"`
	ConfidencePercent    int        `json:"confidence_percent"`
	CheckInTime          time.Time  `json:"check_in_time"`
	StartTime            *time.Time `json:"start_time,omitempty"`
}

// QueueEntryResponse - запись очереди в истории пациента и в ответах администратора
type QueueEntryResponse struct {
	EntryID      string     `json:"entry_id"`
	TokenNumber  string     `json:"token_number"`
	DepartmentID uint       `json:"department_id"`
	Department   string     `json:"department,omitempty"`
	Position     int        `json:"position"`
	Status       string     `json:"status"`
	CheckInTime  time.Time  `json:"check_in_time"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
}

type CallNextResponse struct {
	Message     string `json:"message"`
	EntryID     string `json:"entry_id"`
	TokenNumber string `json:"token_number" example:"D01001"`
}

type StatsResponse struct {
	ServedCount    int64 `json:"served_count"`
	InQueueCount   int64 `json:"in_queue_count"`
	AvgWaitMinutes int   `json:"avg_wait_minutes"`
}
