package models

import "time"

// Category определяет службу, которой адресован сигнал
type Category string

const (
	CategoryPolice         Category = "police"
	CategoryFireDepartment Category = "fire_department"
	CategoryCivilDefense   Category = "civil_defense"
)

// Status определяет стадию обработки сигнала
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// CanAdvanceTo проверяет, является ли переход вперёд по жизненному циклу.
// Допустимые переходы: pending -> in_progress, pending -> resolved,
// in_progress -> resolved. Статус resolved терминальный.
func (s Status) CanAdvanceTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusResolved
	case StatusInProgress:
		return next == StatusResolved
	}
	return false
}

// Location - координаты места происшествия
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
	Location    *Location `json:"location,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}

// CanResolve проверяет, может ли пользователь перевести сигнал в resolved:
// администратор - любой сигнал, сотрудник службы - сигналы своей службы.
func CanResolve(user *User, alert *Alert) bool {
	if user == nil || alert == nil {
		return false
	}
	if user.Role == RoleAdmin {
		return true
	}
	switch alert.Category {
	case CategoryPolice:
		return user.Role == RolePolice
	case CategoryFireDepartment:
		return user.Role == RoleFireDepartment
	case CategoryCivilDefense:
		return user.Role == RoleCivilDefense
	}
	return false
}
