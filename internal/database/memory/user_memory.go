package memory

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// UserStorage — in-memory реализация ports.UserStorage.
type UserStorage struct {
	store
	users map[int64]domain.User
}

// NewUserStorage создает пустое in-memory хранилище пользователей.
func NewUserStorage() *UserStorage {
	return &UserStorage{users: make(map[int64]domain.User)}
}

func (s *UserStorage) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.allocateID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *UserStorage) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStorage) GetUserByToken(_ context.Context, token string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Token != nil && *u.Token == token {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStorage) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.Name = user.Name
	stored.PasswordHash = user.PasswordHash
	stored.Token = user.Token
	stored.UpdatedAt = now()
	s.users[user.ID] = stored
	return nil
}
