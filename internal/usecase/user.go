package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase определяет интерфейс для работы с учетными записями:
// регистрация, логин/логаут, разрешение токена в пользователя, правка профиля.
type UserUseCase interface {
	// Register создает пользователя; username занят — domain.ErrUsernameTaken.
	Register(ctx context.Context, request domain.RegisterRequest) (*domain.UserResponse, error)

	// Login проверяет пару username/password и выдает свежий токен,
	// безусловно затирая предыдущий (одна живая сессия на пользователя).
	Login(ctx context.Context, request domain.LoginRequest) (*domain.UserResponse, error)

	// ResolveToken превращает bearer-токен в пользователя.
	// Любой неопознанный токен — domain.ErrUnauthenticated.
	// Этим гейтом обязан начинаться каждый защищенный эндпоинт.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)

	// Get возвращает публичную проекцию аутентифицированного пользователя.
	Get(ctx context.Context, user *domain.User) *domain.UserResponse

	// Update меняет только переданные поля; пустой запрос — no-op.
	Update(ctx context.Context, user *domain.User, request domain.UpdateUserRequest) (*domain.UserResponse, error)

	// Logout сбрасывает текущий токен в NULL; идемпотентен.
	Logout(ctx context.Context, user *domain.User) error
}

type userUseCase struct {
	users      ports.UserStorage
	pipeline   *validation.Pipeline
	bcryptCost int
	logger     *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(users ports.UserStorage, pipeline *validation.Pipeline, bcryptCost int, logger *slog.Logger) UserUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userUseCase{
		users:      users,
		pipeline:   pipeline,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register регистрирует нового пользователя.
// Пароль хранится только в виде bcrypt-дайджеста, никогда в открытом виде.
func (uc *userUseCase) Register(ctx context.Context, request domain.RegisterRequest) (*domain.UserResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	_, err := uc.users.GetUserByUsername(ctx, request.Username)
	if err == nil {
		uc.logger.Warn("registration rejected, username taken", "username", request.Username)
		return nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("usecase: ошибка при проверке username: %w", err)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(request.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка хеширования пароля: %w", err)
	}

	user := &domain.User{
		Username:     request.Username,
		Name:         request.Name,
		PasswordHash: string(digest),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return domain.ToUserResponse(user), nil
}

// Login выполняет вход и возвращает токен (единственный раз, когда он виден клиенту).
// Неизвестный username и неверный пароль неразличимы снаружи.
func (uc *userUseCase) Login(ctx context.Context, request domain.LoginRequest) (*domain.UserResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	user, err := uc.users.GetUserByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token := uuid.NewString()
	user.Token = &token
	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении токена: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return &domain.UserResponse{
		Username: user.Username,
		Name:     user.Name,
		Token:    token,
	}, nil
}

// ResolveToken — гейт аутентификации.
func (uc *userUseCase) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := uc.users.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("usecase: ошибка при разрешении токена: %w", err)
	}
	return user, nil
}

// Get возвращает проекцию уже аутентифицированного пользователя.
func (uc *userUseCase) Get(ctx context.Context, user *domain.User) *domain.UserResponse {
	return domain.ToUserResponse(user)
}

// Update правит профиль: name и/или password, что прислали — то и меняем.
func (uc *userUseCase) Update(ctx context.Context, user *domain.User, request domain.UpdateUserRequest) (*domain.UserResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	if request.Name != "" {
		user.Name = request.Name
	}
	if request.Password != "" {
		digest, err := bcrypt.GenerateFromPassword([]byte(request.Password), uc.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("usecase: ошибка хеширования пароля: %w", err)
		}
		user.PasswordHash = string(digest)
	}

	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении профиля: %w", err)
	}

	uc.logger.Info("user profile updated", "user_id", user.ID)
	return domain.ToUserResponse(user), nil
}

// Logout сбрасывает токен. Повторный вызов безвреден.
func (uc *userUseCase) Logout(ctx context.Context, user *domain.User) error {
	user.Token = nil
	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("usecase: ошибка при выходе из системы: %w", err)
	}
	uc.logger.Info("user logged out", "user_id", user.ID)
	return nil
}
