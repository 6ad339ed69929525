package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ContactStorage реализует интерфейс ports.ContactStorage поверх PostgreSQL (sqlx).
type ContactStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewContactStorage создает новый экземпляр ContactStorage.
func NewContactStorage(db *sqlx.DB, logger *slog.Logger) *ContactStorage {
	return &ContactStorage{db: db, logger: logger}
}

// SaveContact сохраняет контакт в базе данных и заполняет его ID.
func (s *ContactStorage) SaveContact(ctx context.Context, contact *domain.Contact) error {
	start := time.Now()

	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt

	query := `
	INSERT INTO contacts (user_id, first_name, last_name, email, phone, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		contact.UserID, contact.FirstName, contact.LastName, contact.Email, contact.Phone,
		contact.CreatedAt, contact.UpdatedAt,
	).Scan(&contact.ID)
	if err != nil {
		s.logger.Error("failed to save contact", "user_id", contact.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении контакта: %w", err)
	}

	s.logger.Info("contact saved",
		"contact_id", contact.ID,
		"user_id", contact.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetContactByIDAndOwner получает контакт по паре (id, user_id) одним запросом.
// Существование чужих контактов этим запросом не раскрывается.
func (s *ContactStorage) GetContactByIDAndOwner(ctx context.Context, contactID, userID int64) (*domain.Contact, error) {
	var contact domain.Contact
	query := `SELECT * FROM contacts WHERE id = $1 AND user_id = $2 LIMIT 1`

	err := s.db.GetContext(ctx, &contact, query, contactID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get contact", "contact_id", contactID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении контакта: %w", err)
	}
	return &contact, nil
}

// UpdateContact перезаписывает изменяемые поля контакта.
func (s *ContactStorage) UpdateContact(ctx context.Context, contact *domain.Contact) error {
	contact.UpdatedAt = time.Now()

	query := `
	UPDATE contacts
	SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone, updated_at = :updated_at
	WHERE id = :id
	`

	result, err := s.db.NamedExecContext(ctx, query, contact)
	if err != nil {
		s.logger.Error("failed to update contact", "contact_id", contact.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении контакта: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteContact жестко удаляет контакт; адреса уходят каскадом (FK ON DELETE CASCADE).
func (s *ContactStorage) DeleteContact(ctx context.Context, contactID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, contactID)
	if err != nil {
		s.logger.Error("failed to delete contact", "contact_id", contactID, "error", err)
		return fmt.Errorf("ошибка при удалении контакта: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("contact deleted", "contact_id", contactID)
	return nil
}

// searchWhere собирает WHERE-часть поиска: всегда user_id, дальше
// по предикату на каждый непустой фильтр, соединение через AND.
// name сверяется и с first_name, и с last_name.
func searchWhere(userID int64, filter domain.ContactFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(first_name ILIKE $"+n+" OR last_name ILIKE $"+n+")")
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		conditions = append(conditions, "email ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Phone != "" {
		args = append(args, "%"+filter.Phone+"%")
		conditions = append(conditions, "phone ILIKE $"+strconv.Itoa(len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// SearchContacts ищет контакты владельца с пагинацией.
func (s *ContactStorage) SearchContacts(ctx context.Context, userID int64, filter domain.ContactFilter, limit, offset int) ([]domain.Contact, error) {
	start := time.Now()

	where, args := searchWhere(userID, filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT * FROM contacts WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	contacts := []domain.Contact{}
	if err := s.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		s.logger.Error("failed to search contacts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при поиске контактов: %w", err)
	}

	s.logger.Info("contacts search completed",
		"user_id", userID,
		"found", len(contacts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return contacts, nil
}

// CountContacts считает контакты под теми же фильтрами, что и SearchContacts.
func (s *ContactStorage) CountContacts(ctx context.Context, userID int64, filter domain.ContactFilter) (int64, error) {
	where, args := searchWhere(userID, filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM contacts WHERE %s`, where)

	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		s.logger.Error("failed to count contacts", "user_id", userID, "error", err)
		return 0, fmt.Errorf("ошибка при подсчете контактов: %w", err)
	}
	return total, nil
}

// ListContactsByOwner получает все контакты владельца (для экспорта).
func (s *ContactStorage) ListContactsByOwner(ctx context.Context, userID int64) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	query := `SELECT * FROM contacts WHERE user_id = $1 ORDER BY id`

	if err := s.db.SelectContext(ctx, &contacts, query, userID); err != nil {
		s.logger.Error("failed to list contacts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении контактов владельца: %w", err)
	}
	return contacts, nil
}
