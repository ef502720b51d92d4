package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/citywatch/alert_service/internal/config"
	"github.com/citywatch/alert_service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AlertSnapshot - снимок коллекций сигналов и откликов для слоя представления
type AlertSnapshot struct {
	Alerts    []models.Alert    `json:"alerts"`
	Responses []models.Response `json:"responses"`
	IsLoading bool              `json:"isLoading"`
	Error     string            `json:"error,omitempty"`
}

// CreateAlertInput - кандидат нового сигнала. Идентификатор, статус, время
// создания и автор назначаются стором.
type CreateAlertInput struct {
	Title       string
	Description string
	Category    models.Category
	Location    *models.Location
	Attachments []string
}

// AddResponseInput - кандидат нового отклика. Авторство денормализуется
// из текущей сессии на момент публикации.
type AddResponseInput struct {
	AlertID string
	Text    string
}

// AlertStore определяет контракт стора сигналов: владеет обеими коллекциями,
// применяет правило перехода статусов и штампует авторство.
type AlertStore interface {
	CreateAlert(ctx context.Context, input CreateAlertInput) (*models.Alert, error)
	UpdateAlertStatus(ctx context.Context, id string, status models.Status) error
	AddResponse(ctx context.Context, input AddResponseInput) (*models.Response, error)
	FetchAlerts(ctx context.Context) error
	FetchResponses(ctx context.Context, alertID string) error
	AlertByID(id string) (*models.Alert, bool)
	Snapshot() AlertSnapshot
	Subscribe(fn func()) func()
}

type alertStore struct {
	mu       sync.Mutex
	storage  Storage
	identity Identity
	logger   *logrus.Logger
	latency  time.Duration
	subs     subscribers

	// Инъецируемые источники времени и идентификаторов
	now func() time.Time
	ids func() string

	alerts    []models.Alert
	responses []models.Response
	isLoading bool
	lastError string
}

// NewAlertStore создает стор сигналов и восстанавливает коллекции из
// локального хранилища. Отсутствие записи означает стартовый демо-набор.
func NewAlertStore(ctx context.Context, storage Storage, identity Identity, logger *logrus.Logger, cfg *config.Config) AlertStore {
	s := &alertStore{
		storage:  storage,
		identity: identity,
		logger:   logger,
		latency:  cfg.SimulatedLatency,
		now:      func() time.Time { return time.Now().UTC() },
		ids:      uuid.NewString,
	}
	s.restore(ctx)
	return s
}

func (s *alertStore) restore(ctx context.Context) {
	log := s.logger.WithFields(logrus.Fields{"store": "alert", "method": "restore"})

	raw, err := s.storage.Load(ctx, AlertStorageKey)
	if err != nil {
		log.WithError(err).Warn("Failed to load persisted alerts, starting from seed")
	}
	if raw != nil {
		var rec alertRecord
		if err := json.Unmarshal(raw, &rec); err == nil {
			s.alerts = rec.Alerts
			s.responses = rec.Responses
			return
		}
		log.WithError(err).Warn("Failed to decode persisted alerts, starting from seed")
	}

	s.alerts = seedAlerts()
	s.responses = seedResponses()
}

// CreateAlert создает новый сигнал со статусом pending и добавляет его
// в начало коллекции. Требует аутентифицированную сессию.
func (s *alertStore) CreateAlert(ctx context.Context, input CreateAlertInput) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"store":  "alert",
		"method": "CreateAlert",
		"title":  input.Title,
	})
	log.Info("Attempting to create a new alert")

	s.begin()
	wait(ctx, s.latency)

	user, ok := s.identity.CurrentUser()
	if !ok {
		log.Warn("Create alert attempted without an authenticated user")
		return nil, s.fail("Failed to create alert", ErrNotAuthenticated)
	}

	alert := models.Alert{
		ID:          s.ids(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      models.StatusPending,
		CreatedAt:   s.now(),
		CreatedBy:   user.ID,
		Location:    input.Location,
		Attachments: input.Attachments,
	}

	s.mu.Lock()
	s.alerts = append([]models.Alert{alert}, s.alerts...)
	s.isLoading = false
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.subs.notify()

	log.WithField("alert_id", alert.ID).Info("Alert created successfully")
	return &alert, nil
}

// UpdateAlertStatus переводит сигнал в новый статус. Статус движется только
// вперёд, повторная установка текущего статуса - идемпотентный no-op.
// Переход в resolved проверяется предикатом models.CanResolve.
func (s *alertStore) UpdateAlertStatus(ctx context.Context, id string, status models.Status) error {
	log := s.logger.WithFields(logrus.Fields{
		"store":    "alert",
		"method":   "UpdateAlertStatus",
		"alert_id": id,
		"status":   status,
	})
	log.Info("Attempting to update alert status")

	s.begin()
	wait(ctx, s.latency)

	var actor *models.User
	if status == models.StatusResolved {
		user, ok := s.identity.CurrentUser()
		if !ok {
			log.Warn("Resolve attempted without an authenticated user")
			return s.fail("Failed to update alert status", ErrNotAuthenticated)
		}
		actor = user
	}

	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		log.Warn("Alert not found for status update")
		return s.fail("Failed to update alert status", ErrAlertNotFound)
	}
	alert := &s.alerts[idx]

	if alert.Status == status {
		s.isLoading = false
		s.mu.Unlock()
		s.subs.notify()
		return nil
	}
	if status == models.StatusResolved && !models.CanResolve(actor, alert) {
		s.mu.Unlock()
		log.WithField("user_id", actor.ID).Warn("User is not allowed to resolve this alert")
		return s.fail("Failed to update alert status", ErrForbidden)
	}
	if !alert.Status.CanAdvanceTo(status) {
		s.mu.Unlock()
		log.Warn("Backward status transition rejected")
		return s.fail("Failed to update alert status", ErrInvalidTransition)
	}

	alert.Status = status
	s.isLoading = false
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.subs.notify()

	log.Info("Alert status updated successfully")
	return nil
}

// AddResponse добавляет отклик к существующему сигналу. Первый отклик на
// pending-сигнал переводит его в in_progress; для in_progress и resolved
// статус не меняется.
func (s *alertStore) AddResponse(ctx context.Context, input AddResponseInput) (*models.Response, error) {
	log := s.logger.WithFields(logrus.Fields{
		"store":    "alert",
		"method":   "AddResponse",
		"alert_id": input.AlertID,
	})
	log.Info("Attempting to add a response")

	s.begin()
	wait(ctx, s.latency)

	user, ok := s.identity.CurrentUser()
	if !ok {
		log.Warn("Add response attempted without an authenticated user")
		return nil, s.fail("Failed to add response", ErrNotAuthenticated)
	}

	s.mu.Lock()
	idx := s.indexOfLocked(input.AlertID)
	if idx < 0 {
		s.mu.Unlock()
		log.Warn("Alert not found for response")
		return nil, s.fail("Failed to add response", ErrAlertNotFound)
	}

	response := models.Response{
		ID:            s.ids(),
		AlertID:       input.AlertID,
		Text:          input.Text,
		CreatedAt:     s.now(),
		CreatedBy:     user.ID,
		CreatedByName: user.Name,
		CreatedByRole: user.Role,
	}
	s.responses = append(s.responses, response)

	if s.alerts[idx].Status == models.StatusPending {
		s.alerts[idx].Status = models.StatusInProgress
	}

	s.isLoading = false
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.subs.notify()

	log.WithField("response_id", response.ID).Info("Response added successfully")
	return &response, nil
}

// FetchAlerts перечитывает коллекции из хранилища. Отсутствие записи -
// no-op, текущее состояние сохраняется.
func (s *alertStore) FetchAlerts(ctx context.Context) error {
	return s.refresh(ctx, "FetchAlerts", "Failed to fetch alerts")
}

// FetchResponses перечитывает коллекции из хранилища для указанного сигнала.
// Семантика та же, что у FetchAlerts: точка синхронизации с будущим backend-ом.
func (s *alertStore) FetchResponses(ctx context.Context, alertID string) error {
	return s.refresh(ctx, "FetchResponses", "Failed to fetch responses")
}

func (s *alertStore) refresh(ctx context.Context, method, failMsg string) error {
	log := s.logger.WithFields(logrus.Fields{"store": "alert", "method": method})
	log.Info("Refreshing collections from storage")

	s.begin()
	wait(ctx, s.latency)

	raw, err := s.storage.Load(ctx, AlertStorageKey)
	if err != nil {
		log.WithError(err).Error("Failed to load alert record from storage")
		return s.fail(failMsg, fmt.Errorf("store: could not refresh alerts: %w", err))
	}

	s.mu.Lock()
	if raw != nil {
		var rec alertRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.mu.Unlock()
			log.WithError(err).Error("Failed to decode alert record from storage")
			return s.fail(failMsg, fmt.Errorf("store: could not decode alerts: %w", err))
		}
		s.alerts = rec.Alerts
		s.responses = rec.Responses
	}
	s.isLoading = false
	s.mu.Unlock()
	s.subs.notify()
	return nil
}

// AlertByID возвращает копию сигнала по идентификатору
func (s *alertStore) AlertByID(id string) (*models.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, false
	}
	alert := s.alerts[idx]
	if alert.Location != nil {
		loc := *alert.Location
		alert.Location = &loc
	}
	return &alert, true
}

// Snapshot возвращает копию состояния стора
func (s *alertStore) Snapshot() AlertSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return AlertSnapshot{
		Alerts:    copyAlerts(s.alerts),
		Responses: append([]models.Response(nil), s.responses...),
		IsLoading: s.isLoading,
		Error:     s.lastError,
	}
}

// Subscribe регистрирует подписчика на изменения снимка
func (s *alertStore) Subscribe(fn func()) func() {
	return s.subs.add(fn)
}

// begin отмечает начало операции: isLoading = true, прошлая ошибка очищается
func (s *alertStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()
	s.subs.notify()
}

// fail завершает операцию ошибкой: сообщение попадает в снимок, прежнее
// состояние коллекций остаётся нетронутым
func (s *alertStore) fail(msg string, err error) error {
	s.mu.Lock()
	s.lastError = msg
	s.isLoading = false
	s.mu.Unlock()
	s.subs.notify()
	return err
}

func (s *alertStore) indexOfLocked(id string) int {
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked сохраняет запись коллекций в хранилище. Вызывается под
// мьютексом. Ошибка сохранения не отменяет мутацию, только логируется.
func (s *alertStore) persistLocked(ctx context.Context) {
	rec := alertRecord{
		Alerts:    s.alerts,
		Responses: s.responses,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal alert record")
		return
	}
	if err := s.storage.Save(ctx, AlertStorageKey, raw); err != nil {
		s.logger.WithError(err).Warn("Failed to persist alert record")
	}
}

func copyAlerts(src []models.Alert) []models.Alert {
	out := make([]models.Alert, len(src))
	copy(out, src)
	for i := range out {
		if out[i].Location != nil {
			loc := *out[i].Location
			out[i].Location = &loc
		}
		if out[i].Attachments != nil {
			out[i].Attachments = append([]string(nil), out[i].Attachments...)
		}
	}
	return out
}
