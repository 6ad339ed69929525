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

// GormAddressStorage реализует интерфейс ports.AddressStorage с использованием GORM.
type GormAddressStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormAddressStorage создает новый экземпляр GormAddressStorage.
func NewGormAddressStorage(db *gorm.DB, logger *slog.Logger) *GormAddressStorage {
	return &GormAddressStorage{db: db, logger: logger}
}

// SaveAddress сохраняет адрес с помощью GORM.
func (s *GormAddressStorage) SaveAddress(ctx context.Context, address *domain.Address) error {
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt

	if result := s.db.WithContext(ctx).Create(address); result.Error != nil {
		s.logger.Error("failed to save address", "contact_id", address.ContactID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении адреса с GORM: %w", result.Error)
	}
	return nil
}

// GetAddressByIDAndContact получает адрес по паре (id, contact_id) одним запросом.
func (s *GormAddressStorage) GetAddressByIDAndContact(ctx context.Context, addressID, contactID int64) (*domain.Address, error) {
	var address domain.Address
	result := s.db.WithContext(ctx).
		Where("id = ? AND contact_id = ?", addressID, contactID).
		First(&address)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении адреса с GORM: %w", result.Error)
	}
	return &address, nil
}

// UpdateAddress перезаписывает изменяемые поля адреса.
func (s *GormAddressStorage) UpdateAddress(ctx context.Context, address *domain.Address) error {
	address.UpdatedAt = time.Now()

	result := s.db.WithContext(ctx).
		Model(&domain.Address{}).
		Where("id = ?", address.ID).
		Select("street", "city", "province", "country", "postal_code", "updated_at").
		Updates(address)
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении адреса с GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAddress жестко удаляет адрес.
func (s *GormAddressStorage) DeleteAddress(ctx context.Context, addressID int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Address{}, addressID)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении адреса с GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAddressesByContact получает адреса контакта в порядке вставки.
func (s *GormAddressStorage) ListAddressesByContact(ctx context.Context, contactID int64) ([]domain.Address, error) {
	addresses := []domain.Address{}
	result := s.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("id").
		Find(&addresses)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении адресов контакта с GORM: %w", result.Error)
	}
	return addresses, nil
}
