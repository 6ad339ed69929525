package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM.
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage.
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя с помощью GORM.
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if result := s.db.WithContext(ctx).Create(user); result.Error != nil {
		s.logger.Error("failed to create user", "username", user.Username, "error", result.Error)
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", result.Error)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetUserByUsername ищет пользователя по точному совпадению username.
func (s *GormUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по username с GORM: %w", result.Error)
	}
	return &user, nil
}

// GetUserByToken ищет владельца токена одним конъюнктивным запросом.
func (s *GormUserStorage) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("token = ?", token).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по токену с GORM: %w", result.Error)
	}
	return &user, nil
}

// UpdateUser перезаписывает изменяемые поля одной атомарной записью.
// Select нужен, чтобы nil-токен честно записался как NULL.
func (s *GormUserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", user.ID).
		Select("name", "password_hash", "token", "updated_at").
		Updates(user)
	if result.Error != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", result.Error)
		return fmt.Errorf("ошибка при обновлении пользователя с GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
