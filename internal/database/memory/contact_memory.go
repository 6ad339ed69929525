package memory

import (
	"context"
	"strings"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// ContactStorage — in-memory реализация ports.ContactStorage.
type ContactStorage struct {
	store
	contacts  map[int64]domain.Contact
	addresses *AddressStorage // для каскадного удаления адресов
}

// NewContactStorage создает пустое in-memory хранилище контактов.
// addresses может быть nil, тогда каскадного удаления не будет.
func NewContactStorage(addresses *AddressStorage) *ContactStorage {
	return &ContactStorage{
		contacts:  make(map[int64]domain.Contact),
		addresses: addresses,
	}
}

func (s *ContactStorage) SaveContact(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact.ID = s.allocateID()
	contact.CreatedAt = now()
	contact.UpdatedAt = contact.CreatedAt
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *ContactStorage) GetContactByIDAndOwner(_ context.Context, contactID, userID int64) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contact, ok := s.contacts[contactID]
	if !ok || contact.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := contact
	return &copied, nil
}

func (s *ContactStorage) UpdateContact(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.contacts[contact.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.FirstName = contact.FirstName
	stored.LastName = contact.LastName
	stored.Email = contact.Email
	stored.Phone = contact.Phone
	stored.UpdatedAt = now()
	s.contacts[contact.ID] = stored
	return nil
}

func (s *ContactStorage) DeleteContact(ctx context.Context, contactID int64) error {
	s.mu.Lock()
	if _, ok := s.contacts[contactID]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.contacts, contactID)
	s.mu.Unlock()

	if s.addresses != nil {
		s.addresses.deleteByContact(contactID)
	}
	return nil
}

// matches повторяет AND-композицию фильтров боевого поиска.
func matches(contact *domain.Contact, filter domain.ContactFilter) bool {
	contains := func(value, needle string) bool {
		return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
	}

	if filter.Name != "" && !contains(contact.FirstName, filter.Name) && !contains(contact.LastName, filter.Name) {
		return false
	}
	if filter.Email != "" && !contains(contact.Email, filter.Email) {
		return false
	}
	if filter.Phone != "" && !contains(contact.Phone, filter.Phone) {
		return false
	}
	return true
}

func (s *ContactStorage) matchingIDs(userID int64, filter domain.ContactFilter) []int64 {
	ids := []int64{}
	for _, id := range sortedIDs(s.contacts) {
		contact := s.contacts[id]
		if contact.UserID == userID && matches(&contact, filter) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *ContactStorage) SearchContacts(_ context.Context, userID int64, filter domain.ContactFilter, limit, offset int) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.matchingIDs(userID, filter)

	result := []domain.Contact{}
	for i := offset; i < len(ids) && len(result) < limit; i++ {
		result = append(result, s.contacts[ids[i]])
	}
	return result, nil
}

func (s *ContactStorage) CountContacts(_ context.Context, userID int64, filter domain.ContactFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matchingIDs(userID, filter))), nil
}

func (s *ContactStorage) ListContactsByOwner(_ context.Context, userID int64) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Contact{}
	for _, id := range sortedIDs(s.contacts) {
		if s.contacts[id].UserID == userID {
			result = append(result, s.contacts[id])
		}
	}
	return result, nil
}
