package store

import (
	"context"

	"github.com/citywatch/alert_service/internal/models"
)

//go:generate mockgen -destination=mocks/store_mock.go -package=mocks github.com/citywatch/alert_service/internal/store Storage,Identity,SessionStore,AlertStore

// Фиксированные ключи записей в локальном хранилище
const (
	SessionStorageKey = "auth-storage"
	AlertStorageKey   = "alert-storage"
)

// Storage определяет контракт долговременного локального хранилища:
// одна JSON-запись на фиксированный ключ. Load возвращает (nil, nil),
// если записи по ключу нет.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Identity предоставляет согласованный снимок текущего пользователя сессии
type Identity interface {
	CurrentUser() (*models.User, bool)
}

// sessionRecord - формат записи сессии в хранилище
type sessionRecord struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// alertRecord - формат записи коллекций сигналов и откликов в хранилище
type alertRecord struct {
	Alerts    []models.Alert    `json:"alerts"`
	Responses []models.Response `json:"responses"`
}
