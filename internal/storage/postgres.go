package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/citywatch/alert_service/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage хранит записи сторов в таблице store_records:
// одна строка на фиксированный ключ, значение - jsonb.
type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(db *pgxpool.Pool) store.Storage {
	return &PostgresStorage{db: db}
}

// Load читает запись по ключу. Отсутствие строки - не ошибка: (nil, nil).
func (p *PostgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM store_records
		WHERE key = $1;
	`
	var val []byte
	err := p.db.QueryRow(ctx, query, key).Scan(&val)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load record %s: %w", key, err)
	}
	return val, nil
}

// Save выполняет upsert записи по ключу
func (p *PostgresStorage) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO store_records (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW();
	`
	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}
