package di

import (
	"fmt"
	"io"

	"github.com/GoArmGo/ContactBook/internal/adapter/storage/minio"
	"github.com/GoArmGo/ContactBook/internal/app"
	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/database/client"
	"github.com/GoArmGo/ContactBook/internal/database/postgres"
	"github.com/GoArmGo/ContactBook/internal/database/storage"
	"github.com/GoArmGo/ContactBook/internal/logger"
	"github.com/GoArmGo/ContactBook/internal/rabbitmq"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx) — он же применяет миграции
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers := []io.Closer{dbClient}

	// 3. Инициализация хранилищ: бэкенд выбирается конфигурацией
	var (
		userStorage    ports.UserStorage
		contactStorage ports.ContactStorage
		addressStorage ports.AddressStorage
	)
	switch cfg.StorageBackend {
	case "sqlx":
		userStorage = storage.NewUserStorage(dbClient.DB, slogger)
		contactStorage = storage.NewContactStorage(dbClient.DB, slogger)
		addressStorage = storage.NewAddressStorage(dbClient.DB, slogger)

	case "gorm":
		gormDB, gormErr := postgres.NewGormDB(cfg, slogger)
		if gormErr != nil {
			return nil, gormErr
		}
		userStorage = postgres.NewGormUserStorage(gormDB, slogger)
		contactStorage = postgres.NewGormContactStorage(gormDB, slogger)
		addressStorage = postgres.NewGormAddressStorage(gormDB, slogger)

	default:
		return nil, fmt.Errorf("неизвестный STORAGE_BACKEND: %q (используйте 'sqlx' или 'gorm')", cfg.StorageBackend)
	}

	slogger.Info("storage initialized", "backend", cfg.StorageBackend)

	// 4. Инициализация клиентов внешних сервисов
	fileStorage, err := minio.NewMinioClient(cfg, slogger) // S3 / MinIO адаптер
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer в одном лице)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, rabbitMQClient)

	// 6. Инициализация бизнес-логики (usecases)
	pipeline := validation.NewPipeline()
	ownership := usecase.NewOwnershipResolver(contactStorage, addressStorage, slogger)

	userUseCase := usecase.NewUserUseCase(userStorage, pipeline, cfg.BcryptCost, slogger)
	contactUseCase := usecase.NewContactUseCase(contactStorage, ownership, pipeline, slogger)
	addressUseCase := usecase.NewAddressUseCase(addressStorage, ownership, pipeline, slogger)
	exportUseCase := usecase.NewExportUseCase(contactStorage, addressStorage, rabbitMQClient, fileStorage, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		userUseCase,
		contactUseCase,
		addressUseCase,
		exportUseCase,
		rabbitMQClient,
		closers...,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
