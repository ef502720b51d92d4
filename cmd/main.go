package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/citywatch/alert_service/internal/config"
	v1 "github.com/citywatch/alert_service/internal/handler/http/v1"
	"github.com/citywatch/alert_service/internal/storage"
	"github.com/citywatch/alert_service/internal/store"
	"github.com/citywatch/alert_service/pkg/logger"
	"github.com/citywatch/alert_service/pkg/postgres"
	redisclient "github.com/citywatch/alert_service/pkg/redis"
)

func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newStorage выбирает backend локального хранилища по конфигурации
func newStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Storage, func(), error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return storage.NewPostgresStorage(dbpool), dbpool.Close, nil

	case config.StorageRedis:
		client, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Successfully connected to Redis")
		return storage.NewRedisStorage(client), func() { _ = client.Close() }, nil

	default:
		st, err := storage.NewFileStorage(cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.StorageDir).Info("Using file storage")
		return st, func() {}, nil
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация локального хранилища
	st, closeStorage, err := newStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer closeStorage()

	// Инициализация сторов: сессия восстанавливается первой, стор сигналов
	// читает identity через неё
	sessionStore := store.NewSessionStore(ctx, st, log, cfg)
	alertStore := store.NewAlertStore(ctx, st, sessionStore, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(sessionStore, alertStore, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
