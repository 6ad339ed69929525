package ports

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
type UserStorage interface {
	// CreateUser сохраняет нового пользователя и заполняет его ID.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByUsername ищет пользователя по точному совпадению username.
	// Возвращает domain.ErrNotFound, если такого пользователя нет.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByToken ищет пользователя, которому прямо сейчас принадлежит токен.
	// Один конъюнктивный lookup: нет владельца — domain.ErrNotFound.
	GetUserByToken(ctx context.Context, token string) (*domain.User, error)

	// UpdateUser перезаписывает изменяемые поля (name, password_hash, token).
	// Запись токена атомарна: новый логин просто затирает предыдущий токен.
	UpdateUser(ctx context.Context, user *domain.User) error
}

// ContactStorage определяет методы для взаимодействия с хранилищем контактов.
type ContactStorage interface {
	// SaveContact сохраняет новый контакт и заполняет его ID.
	SaveContact(ctx context.Context, contact *domain.Contact) error

	// GetContactByIDAndOwner ищет контакт одним запросом по паре (id, user_id).
	// Чужой или несуществующий контакт неотличимы: в обоих случаях domain.ErrNotFound.
	GetContactByIDAndOwner(ctx context.Context, contactID, userID int64) (*domain.Contact, error)

	// UpdateContact перезаписывает изменяемые поля контакта.
	UpdateContact(ctx context.Context, contact *domain.Contact) error

	// DeleteContact жестко удаляет контакт (и каскадно его адреса).
	DeleteContact(ctx context.Context, contactID int64) error

	// SearchContacts ищет контакты владельца по AND-комбинации фильтров с пагинацией.
	SearchContacts(ctx context.Context, userID int64, filter domain.ContactFilter, limit, offset int) ([]domain.Contact, error)

	// CountContacts считает контакты владельца под теми же фильтрами, что и SearchContacts.
	CountContacts(ctx context.Context, userID int64, filter domain.ContactFilter) (int64, error)

	// ListContactsByOwner возвращает все контакты владельца (для экспорта).
	ListContactsByOwner(ctx context.Context, userID int64) ([]domain.Contact, error)
}

// AddressStorage определяет методы для взаимодействия с хранилищем адресов.
type AddressStorage interface {
	// SaveAddress сохраняет новый адрес и заполняет его ID.
	SaveAddress(ctx context.Context, address *domain.Address) error

	// GetAddressByIDAndContact ищет адрес одним запросом по паре (id, contact_id).
	GetAddressByIDAndContact(ctx context.Context, addressID, contactID int64) (*domain.Address, error)

	// UpdateAddress перезаписывает изменяемые поля адреса.
	UpdateAddress(ctx context.Context, address *domain.Address) error

	// DeleteAddress жестко удаляет адрес.
	DeleteAddress(ctx context.Context, addressID int64) error

	// ListAddressesByContact возвращает адреса контакта в порядке вставки.
	ListAddressesByContact(ctx context.Context, contactID int64) ([]domain.Address, error)
}
