package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserStorage реализует интерфейс ports.UserStorage поверх PostgreSQL (sqlx).
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage.
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя и заполняет его ID.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	query := `
	INSERT INTO users (username, name, password_hash, token, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.Name, user.PasswordHash, user.Token, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		s.logger.Error("failed to create user", "username", user.Username, "error", err)
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByUsername ищет пользователя по точному совпадению username.
func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE username = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по username: %w", err)
	}
	return &user, nil
}

// GetUserByToken ищет владельца токена одним конъюнктивным запросом.
func (s *UserStorage) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE token = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by token", "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по токену: %w", err)
	}
	return &user, nil
}

// UpdateUser перезаписывает изменяемые поля одной атомарной записью.
// Токен затирается этим же UPDATE — отдельного критического участка не нужно.
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	user.UpdatedAt = time.Now()

	query := `
	UPDATE users
	SET name = :name, password_hash = :password_hash, token = :token, updated_at = :updated_at
	WHERE id = :id
	`

	result, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("user updated",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
