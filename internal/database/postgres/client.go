package postgres

import (
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormDB открывает подключение к PostgreSQL через GORM.
// Альтернативный бэкенд хранилища; схему ведет golang-migrate (см. database/client),
// поэтому AutoMigrate здесь не вызывается.
func NewGormDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("failed to open GORM connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД через GORM: %w", err)
	}

	logger.Info("GORM connection established successfully")
	return db, nil
}
