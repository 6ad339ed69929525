package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
)

// OwnershipResolver — центральный страж цепочки владения User→Contact→Address.
// Любой доступ к вложенному ресурсу обязан пройти через него, и строго по порядку:
// сначала ResolveContact, затем ResolveAddress с уже проверенным contactID.
// Эндпоинт, который пропустил первый шаг, — это дыра в безопасности.
type OwnershipResolver interface {
	// ResolveContact подтверждает, что контакт существует И принадлежит principal.
	// Проверка выполняется одним конъюнктивным запросом (id AND owner), поэтому
	// по ответу или таймингу нельзя понять, существует ли чужой контакт:
	// в обоих случаях domain.ErrNotFound, никогда не Forbidden.
	ResolveContact(ctx context.Context, userID, contactID int64) (*domain.Contact, error)

	// ResolveAddress подтверждает, что адрес существует И принадлежит контакту.
	// contactID обязан быть получен из ResolveContact того же запроса —
	// адрес никогда не ищется по одному только addressID.
	ResolveAddress(ctx context.Context, contactID, addressID int64) (*domain.Address, error)
}

type ownershipResolver struct {
	contacts  ports.ContactStorage
	addresses ports.AddressStorage
	logger    *slog.Logger
}

// NewOwnershipResolver создает новый экземпляр OwnershipResolver.
func NewOwnershipResolver(contacts ports.ContactStorage, addresses ports.AddressStorage, logger *slog.Logger) OwnershipResolver {
	return &ownershipResolver{
		contacts:  contacts,
		addresses: addresses,
		logger:    logger,
	}
}

func (r *ownershipResolver) ResolveContact(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	contact, err := r.contacts.GetContactByIDAndOwner(ctx, contactID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("contact resolution failed", "user_id", userID, "contact_id", contactID)
			return nil, domain.NewNotFoundError("Contact not found")
		}
		return nil, fmt.Errorf("usecase: ошибка при разрешении контакта: %w", err)
	}
	return contact, nil
}

func (r *ownershipResolver) ResolveAddress(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	address, err := r.addresses.GetAddressByIDAndContact(ctx, addressID, contactID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("address resolution failed", "contact_id", contactID, "address_id", addressID)
			return nil, domain.NewNotFoundError("Address not found")
		}
		return nil, fmt.Errorf("usecase: ошибка при разрешении адреса: %w", err)
	}
	return address, nil
}
