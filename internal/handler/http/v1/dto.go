package v1

import (
	"time"

	"github.com/citywatch/alert_service/internal/models"
)

// LoginRequest DTO для входа в систему
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse DTO с информацией о пользователе сессии
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Avatar   string      `json:"avatar,omitempty"`
}

// SessionResponse DTO для ответа со снимком сессии
type SessionResponse struct {
	User            *UserResponse `json:"user"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Error           string        `json:"error,omitempty"`
}

// LocationPayload - координаты места происшествия
type LocationPayload struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// CreateAlertRequest DTO для создания сигнала
type CreateAlertRequest struct {
	Title       string           `json:"title" validate:"required,min=2,max=255"`
	Description string           `json:"description" validate:"required"`
	Category    models.Category  `json:"category" validate:"required,oneof=police fire_department civil_defense"`
	Location    *LocationPayload `json:"location,omitempty"`
	Attachments []string         `json:"attachments,omitempty"`
}

// UpdateAlertStatusRequest DTO для смены статуса сигнала
type UpdateAlertStatusRequest struct {
	Status models.Status `json:"status" validate:"required,oneof=pending in_progress resolved"`
}

// AddResponseRequest DTO для добавления отклика
type AddResponseRequest struct {
	Text string `json:"text" validate:"required"`
}

// AlertResponse DTO для ответа с информацией о сигнале
type AlertResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    models.Category  `json:"category"`
	Status      models.Status    `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	CreatedBy   string           `json:"createdBy"`
	Location    *LocationPayload `json:"location,omitempty"`
	Attachments []string         `json:"attachments,omitempty"`
}

// AlertDetailResponse - сигнал вместе с признаком, может ли текущий
// пользователь перевести его в resolved
type AlertDetailResponse struct {
	AlertResponse
	CanResolve bool `json:"canResolve"`
}

// ResponseItem DTO для ответа с информацией об отклике
type ResponseItem struct {
	ID            string      `json:"id"`
	AlertID       string      `json:"alertId"`
	Text          string      `json:"text"`
	CreatedAt     time.Time   `json:"createdAt"`
	CreatedBy     string      `json:"createdBy"`
	CreatedByName string      `json:"createdByName"`
	CreatedByRole models.Role `json:"createdByRole"`
}
