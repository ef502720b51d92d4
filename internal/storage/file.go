package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/citywatch/alert_service/internal/store"
)

// FileStorage хранит каждую запись в отдельном JSON-файле <dir>/<key>.json.
// Это backend по умолчанию: долговременное локальное хранилище без внешних
// зависимостей.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (store.Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Load читает запись по ключу. Отсутствие файла - не ошибка: (nil, nil).
func (f *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return raw, nil
}

// Save записывает запись атомарно: во временный файл с последующим rename
func (f *FileStorage) Save(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace record %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
