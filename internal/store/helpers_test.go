package store

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/citywatch/alert_service/internal/config"
	"github.com/citywatch/alert_service/internal/models"
	"github.com/sirupsen/logrus"
)

// memStorage - хранилище в памяти для тестов сторов. Gomock-моки здесь не
// подходят: пакет mocks импортирует store, что дало бы цикл импорта.
type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (m *memStorage) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// fakeIdentity отдаёт фиксированного пользователя сессии
type fakeIdentity struct {
	user *models.User
}

func (f *fakeIdentity) CurrentUser() (*models.User, bool) {
	if f.user == nil {
		return nil, false
	}
	user := *f.user
	return &user, true
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testConfig() *config.Config {
	// Нулевая задержка, чтобы тесты не ждали таймеров
	return &config.Config{SimulatedLatency: 0}
}

// newTestSessionStore создает стор сессии поверх пустого хранилища
func newTestSessionStore(t *testing.T) (*sessionStore, *memStorage) {
	t.Helper()
	st := newMemStorage()
	s := NewSessionStore(context.Background(), st, testLogger(), testConfig())
	return s.(*sessionStore), st
}

// newTestAlertStore создает стор сигналов с демо-набором, фиксированной
// identity и детерминированными идентификаторами
func newTestAlertStore(t *testing.T, user *models.User) (*alertStore, *memStorage) {
	t.Helper()
	st := newMemStorage()
	s := NewAlertStore(context.Background(), st, &fakeIdentity{user: user}, testLogger(), testConfig())

	as := s.(*alertStore)
	seq := 0
	as.ids = func() string {
		seq++
		return fmt.Sprintf("test-id-%d", seq)
	}
	return as, st
}

// demoUser возвращает identity демо-учётки по имени пользователя
func demoUser(t *testing.T, username string) *models.User {
	t.Helper()
	for _, c := range demoCredentials {
		if c.User.Username == username {
			user := c.User
			return &user
		}
	}
	t.Fatalf("unknown demo user %q", username)
	return nil
}
