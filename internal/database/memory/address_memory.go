package memory

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// AddressStorage — in-memory реализация ports.AddressStorage.
type AddressStorage struct {
	store
	addresses map[int64]domain.Address
}

// NewAddressStorage создает пустое in-memory хранилище адресов.
func NewAddressStorage() *AddressStorage {
	return &AddressStorage{addresses: make(map[int64]domain.Address)}
}

func (s *AddressStorage) SaveAddress(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	address.ID = s.allocateID()
	address.CreatedAt = now()
	address.UpdatedAt = address.CreatedAt
	s.addresses[address.ID] = *address
	return nil
}

func (s *AddressStorage) GetAddressByIDAndContact(_ context.Context, addressID, contactID int64) (*domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return nil, domain.ErrNotFound
	}
	copied := address
	return &copied, nil
}

func (s *AddressStorage) UpdateAddress(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.addresses[address.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.Street = address.Street
	stored.City = address.City
	stored.Province = address.Province
	stored.Country = address.Country
	stored.PostalCode = address.PostalCode
	stored.UpdatedAt = now()
	s.addresses[address.ID] = stored
	return nil
}

func (s *AddressStorage) DeleteAddress(_ context.Context, addressID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[addressID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.addresses, addressID)
	return nil
}

func (s *AddressStorage) ListAddressesByContact(_ context.Context, contactID int64) ([]domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Address{}
	for _, id := range sortedIDs(s.addresses) {
		if s.addresses[id].ContactID == contactID {
			result = append(result, s.addresses[id])
		}
	}
	return result, nil
}

// deleteByContact снимает все адреса контакта (аналог ON DELETE CASCADE).
func (s *AddressStorage) deleteByContact(contactID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, address := range s.addresses {
		if address.ContactID == contactID {
			delete(s.addresses, id)
		}
	}
}
