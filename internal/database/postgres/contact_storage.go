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

// GormContactStorage реализует интерфейс ports.ContactStorage с использованием GORM.
type GormContactStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormContactStorage создает новый экземпляр GormContactStorage.
func NewGormContactStorage(db *gorm.DB, logger *slog.Logger) *GormContactStorage {
	return &GormContactStorage{db: db, logger: logger}
}

// SaveContact сохраняет контакт с помощью GORM.
func (s *GormContactStorage) SaveContact(ctx context.Context, contact *domain.Contact) error {
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt

	if result := s.db.WithContext(ctx).Create(contact); result.Error != nil {
		s.logger.Error("failed to save contact", "user_id", contact.UserID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении контакта с GORM: %w", result.Error)
	}
	return nil
}

// GetContactByIDAndOwner получает контакт по паре (id, user_id) одним запросом.
func (s *GormContactStorage) GetContactByIDAndOwner(ctx context.Context, contactID, userID int64) (*domain.Contact, error) {
	var contact domain.Contact
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(&contact)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении контакта с GORM: %w", result.Error)
	}
	return &contact, nil
}

// UpdateContact перезаписывает изменяемые поля контакта.
func (s *GormContactStorage) UpdateContact(ctx context.Context, contact *domain.Contact) error {
	contact.UpdatedAt = time.Now()

	result := s.db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("id = ?", contact.ID).
		Select("first_name", "last_name", "email", "phone", "updated_at").
		Updates(contact)
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении контакта с GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteContact жестко удаляет контакт.
func (s *GormContactStorage) DeleteContact(ctx context.Context, contactID int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Contact{}, contactID)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении контакта с GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// withFilter навешивает на запрос предикаты поиска: всегда владелец,
// дальше AND по каждому непустому фильтру.
func withFilter(query *gorm.DB, userID int64, filter domain.ContactFilter) *gorm.DB {
	query = query.Where("user_id = ?", userID)

	if filter.Name != "" {
		pattern := "%" + filter.Name + "%"
		query = query.Where("(first_name ILIKE ? OR last_name ILIKE ?)", pattern, pattern)
	}
	if filter.Email != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.Phone != "" {
		query = query.Where("phone ILIKE ?", "%"+filter.Phone+"%")
	}
	return query
}

// SearchContacts ищет контакты владельца с пагинацией.
func (s *GormContactStorage) SearchContacts(ctx context.Context, userID int64, filter domain.ContactFilter, limit, offset int) ([]domain.Contact, error) {
	contacts := []domain.Contact{}

	result := withFilter(s.db.WithContext(ctx), userID, filter).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&contacts)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при поиске контактов с GORM: %w", result.Error)
	}
	return contacts, nil
}

// CountContacts считает контакты под теми же фильтрами, что и SearchContacts.
func (s *GormContactStorage) CountContacts(ctx context.Context, userID int64, filter domain.ContactFilter) (int64, error) {
	var total int64
	result := withFilter(s.db.WithContext(ctx).Model(&domain.Contact{}), userID, filter).
		Count(&total)
	if result.Error != nil {
		return 0, fmt.Errorf("ошибка при подсчете контактов с GORM: %w", result.Error)
	}
	return total, nil
}

// ListContactsByOwner получает все контакты владельца.
func (s *GormContactStorage) ListContactsByOwner(ctx context.Context, userID int64) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&contacts)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении контактов владельца с GORM: %w", result.Error)
	}
	return contacts, nil
}
