package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/messaging/payloads"
	"github.com/google/uuid"
)

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO).
// Здесь в него выгружаются готовые CSV-экспорты.
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

// ExportUseCase определяет интерфейс экспорта контактов.
// Экспорт асинхронный: сервер публикует задание в очередь, воркер собирает CSV
// и выгружает его в объектное хранилище. На цепочку владения это не влияет:
// воркер читает контакты теми же owner-scoped запросами.
type ExportUseCase interface {
	// RequestExport ставит задание на экспорт контактов принципала
	// и возвращает ключ будущего объекта.
	RequestExport(ctx context.Context, user *domain.User) (string, error)

	// BuildAndUploadExport — рабочая часть: собирает CSV по заданию и грузит в хранилище.
	// Вызывается воркером для каждого сообщения из очереди.
	BuildAndUploadExport(ctx context.Context, payload payloads.ContactExportPayload) error
}

type exportUseCase struct {
	contacts    ports.ContactStorage
	addresses   ports.AddressStorage
	publisher   ports.ContactExportPublisher
	fileStorage FileStorage
	logger      *slog.Logger
}

// NewExportUseCase создает новый экземпляр ExportUseCase.
func NewExportUseCase(
	contacts ports.ContactStorage,
	addresses ports.AddressStorage,
	publisher ports.ContactExportPublisher,
	fileStorage FileStorage,
	logger *slog.Logger,
) ExportUseCase {
	return &exportUseCase{
		contacts:    contacts,
		addresses:   addresses,
		publisher:   publisher,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (uc *exportUseCase) RequestExport(ctx context.Context, user *domain.User) (string, error) {
	objectKey := fmt.Sprintf("contact-exports/%d/%s.csv", user.ID, uuid.NewString())

	payload := payloads.ContactExportPayload{
		UserID:    user.ID,
		ObjectKey: objectKey,
	}
	if err := uc.publisher.PublishContactExportRequest(ctx, payload); err != nil {
		return "", fmt.Errorf("usecase: ошибка публикации задания на экспорт: %w", err)
	}

	uc.logger.Info("contact export requested", "user_id", user.ID, "object_key", objectKey)
	return objectKey, nil
}

func (uc *exportUseCase) BuildAndUploadExport(ctx context.Context, payload payloads.ContactExportPayload) error {
	contacts, err := uc.contacts.ListContactsByOwner(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при выборке контактов для экспорта: %w", err)
	}

	body, err := uc.renderCSV(ctx, contacts)
	if err != nil {
		return err
	}

	if _, err := uc.fileStorage.UploadFile(ctx, payload.ObjectKey, bytes.NewReader(body), "text/csv"); err != nil {
		return fmt.Errorf("usecase: ошибка выгрузки экспорта в хранилище: %w", err)
	}

	uc.logger.Info("contact export uploaded",
		"user_id", payload.UserID,
		"object_key", payload.ObjectKey,
		"contacts", len(contacts),
	)
	return nil
}

// renderCSV собирает CSV: по строке на контакт, адреса подтягиваются к каждому.
func (uc *exportUseCase) renderCSV(ctx context.Context, contacts []domain.Contact) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"contact_id", "first_name", "last_name", "email", "phone", "street", "city", "province", "country", "postal_code"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("usecase: ошибка записи заголовка CSV: %w", err)
	}

	for i := range contacts {
		contact := &contacts[i]

		addresses, err := uc.addresses.ListAddressesByContact(ctx, contact.ID)
		if err != nil {
			return nil, fmt.Errorf("usecase: ошибка при выборке адресов для экспорта: %w", err)
		}

		if len(addresses) == 0 {
			if err := w.Write(contactRow(contact, nil)); err != nil {
				return nil, fmt.Errorf("usecase: ошибка записи строки CSV: %w", err)
			}
			continue
		}
		for j := range addresses {
			if err := w.Write(contactRow(contact, &addresses[j])); err != nil {
				return nil, fmt.Errorf("usecase: ошибка записи строки CSV: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("usecase: ошибка финализации CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func contactRow(contact *domain.Contact, address *domain.Address) []string {
	row := []string{
		strconv.FormatInt(contact.ID, 10),
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		"", "", "", "", "",
	}
	if address != nil {
		row[5] = address.Street
		row[6] = address.City
		row[7] = address.Province
		row[8] = address.Country
		row[9] = address.PostalCode
	}
	return row
}
