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

// AddressStorage реализует интерфейс ports.AddressStorage поверх PostgreSQL (sqlx).
type AddressStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewAddressStorage создает новый экземпляр AddressStorage.
func NewAddressStorage(db *sqlx.DB, logger *slog.Logger) *AddressStorage {
	return &AddressStorage{db: db, logger: logger}
}

// SaveAddress сохраняет адрес в базе данных и заполняет его ID.
func (s *AddressStorage) SaveAddress(ctx context.Context, address *domain.Address) error {
	start := time.Now()

	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt

	query := `
	INSERT INTO addresses (contact_id, street, city, province, country, postal_code, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		address.ContactID, address.Street, address.City, address.Province,
		address.Country, address.PostalCode, address.CreatedAt, address.UpdatedAt,
	).Scan(&address.ID)
	if err != nil {
		s.logger.Error("failed to save address", "contact_id", address.ContactID, "error", err)
		return fmt.Errorf("ошибка при сохранении адреса: %w", err)
	}

	s.logger.Info("address saved",
		"address_id", address.ID,
		"contact_id", address.ContactID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetAddressByIDAndContact получает адрес по паре (id, contact_id) одним запросом.
func (s *AddressStorage) GetAddressByIDAndContact(ctx context.Context, addressID, contactID int64) (*domain.Address, error) {
	var address domain.Address
	query := `SELECT * FROM addresses WHERE id = $1 AND contact_id = $2 LIMIT 1`

	err := s.db.GetContext(ctx, &address, query, addressID, contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get address", "address_id", addressID, "contact_id", contactID, "error", err)
		return nil, fmt.Errorf("ошибка при получении адреса: %w", err)
	}
	return &address, nil
}

// UpdateAddress перезаписывает изменяемые поля адреса.
func (s *AddressStorage) UpdateAddress(ctx context.Context, address *domain.Address) error {
	address.UpdatedAt = time.Now()

	query := `
	UPDATE addresses
	SET street = :street, city = :city, province = :province, country = :country,
	    postal_code = :postal_code, updated_at = :updated_at
	WHERE id = :id
	`

	result, err := s.db.NamedExecContext(ctx, query, address)
	if err != nil {
		s.logger.Error("failed to update address", "address_id", address.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении адреса: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAddress жестко удаляет адрес.
func (s *AddressStorage) DeleteAddress(ctx context.Context, addressID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, addressID)
	if err != nil {
		s.logger.Error("failed to delete address", "address_id", addressID, "error", err)
		return fmt.Errorf("ошибка при удалении адреса: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("address deleted", "address_id", addressID)
	return nil
}

// ListAddressesByContact получает адреса контакта в порядке вставки.
func (s *AddressStorage) ListAddressesByContact(ctx context.Context, contactID int64) ([]domain.Address, error) {
	addresses := []domain.Address{}
	query := `SELECT * FROM addresses WHERE contact_id = $1 ORDER BY id`

	if err := s.db.SelectContext(ctx, &addresses, query, contactID); err != nil {
		s.logger.Error("failed to list addresses", "contact_id", contactID, "error", err)
		return nil, fmt.Errorf("ошибка при получении адресов контакта: %w", err)
	}
	return addresses, nil
}
