package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/citywatch/alert_service/internal/config"
	"github.com/citywatch/alert_service/internal/models"
	"github.com/sirupsen/logrus"
)

// Сообщение об ошибке аутентификации, которое видит пользователь
const msgInvalidCredentials = "Invalid username or password"

// SessionSnapshot - снимок состояния аутентификации для слоя представления
type SessionSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

// SessionStore определяет контракт стора аутентификации: ровно одна
// активная identity и канал последней ошибки входа.
type SessionStore interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	ClearError()
	Snapshot() SessionSnapshot
	CurrentUser() (*models.User, bool)
	Subscribe(fn func()) func()
}

type sessionStore struct {
	mu      sync.Mutex
	storage Storage
	logger  *logrus.Logger
	latency time.Duration
	subs    subscribers

	user      *models.User
	isLoading bool
	lastError string
}

// NewSessionStore создает стор сессии и восстанавливает состояние из
// локального хранилища. Отсутствие записи означает пустую сессию.
func NewSessionStore(ctx context.Context, storage Storage, logger *logrus.Logger, cfg *config.Config) SessionStore {
	s := &sessionStore{
		storage: storage,
		logger:  logger,
		latency: cfg.SimulatedLatency,
	}
	s.restore(ctx)
	return s
}

// restore восстанавливает сессию из хранилища. Любая ошибка здесь не
// фатальна: стор просто стартует пустым.
func (s *sessionStore) restore(ctx context.Context) {
	log := s.logger.WithFields(logrus.Fields{"store": "session", "method": "restore"})

	raw, err := s.storage.Load(ctx, SessionStorageKey)
	if err != nil {
		log.WithError(err).Warn("Failed to load persisted session, starting empty")
		return
	}
	if raw == nil {
		return
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.WithError(err).Warn("Failed to decode persisted session, starting empty")
		return
	}
	s.user = rec.User
}

// Login выполняет точное сравнение пары (username, password) со справочником
// демо-учёток. Неудачный вход - не исключение, а состояние: ошибка попадает
// в снимок, предыдущая identity не затрагивается.
func (s *sessionStore) Login(ctx context.Context, username, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"store":    "session",
		"method":   "Login",
		"username": username,
	})

	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()
	s.subs.notify()

	wait(ctx, s.latency)

	user, ok := findCredential(username, password)

	s.mu.Lock()
	if !ok {
		s.lastError = msgInvalidCredentials
		s.isLoading = false
		s.mu.Unlock()
		s.subs.notify()

		log.Warn("Login attempt with invalid credentials")
		return ErrInvalidCredentials
	}

	s.user = user
	s.isLoading = false
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.subs.notify()

	log.WithField("user_id", user.ID).Info("User logged in")
	return nil
}

// Logout синхронно очищает identity. Последняя ошибка входа не очищается.
func (s *sessionStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.persistLocked(context.Background())
	s.mu.Unlock()
	s.subs.notify()

	s.logger.WithFields(logrus.Fields{"store": "session", "method": "Logout"}).Info("User logged out")
}

// ClearError синхронно очищает последнюю ошибку входа
func (s *sessionStore) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	s.subs.notify()
}

// Snapshot возвращает копию состояния сессии
func (s *sessionStore) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		IsAuthenticated: s.user != nil,
		IsLoading:       s.isLoading,
		Error:           s.lastError,
	}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}

// CurrentUser возвращает копию текущей identity. Это реализация контракта
// Identity, через который стор сигналов штампует авторство.
func (s *sessionStore) CurrentUser() (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, false
	}
	user := *s.user
	return &user, true
}

// Subscribe регистрирует подписчика на изменения снимка
func (s *sessionStore) Subscribe(fn func()) func() {
	return s.subs.add(fn)
}

// persistLocked сохраняет запись сессии в хранилище. Вызывается под мьютексом.
// Ошибка сохранения не отменяет мутацию, только логируется.
func (s *sessionStore) persistLocked(ctx context.Context) {
	rec := sessionRecord{
		User:            s.user,
		IsAuthenticated: s.user != nil,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal session record")
		return
	}
	if err := s.storage.Save(ctx, SessionStorageKey, raw); err != nil {
		s.logger.WithError(err).Warn("Failed to persist session record")
	}
}
