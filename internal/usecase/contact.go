package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

// ContactUseCase определяет интерфейс для бизнес-логики работы с контактами.
// Каждая операция над существующим контактом начинается с OwnershipResolver.
type ContactUseCase interface {
	// Create создает контакт с owner_user_id = user.ID.
	// Владелец берется только из аутентифицированного пользователя,
	// присланное клиентом поле владельца не читается вовсе.
	Create(ctx context.Context, user *domain.User, request domain.CreateContactRequest) (*domain.ContactResponse, error)

	// Get возвращает контакт принципала по ID.
	Get(ctx context.Context, user *domain.User, contactID int64) (*domain.ContactResponse, error)

	// Update применяет только валидированные изменяемые поля.
	Update(ctx context.Context, user *domain.User, contactID int64, request domain.UpdateContactRequest) (*domain.ContactResponse, error)

	// Remove жестко удаляет контакт и возвращает снимок до удаления.
	Remove(ctx context.Context, user *domain.User, contactID int64) (*domain.ContactResponse, error)

	// Search ищет контакты принципала по AND-комбинации фильтров с пагинацией.
	Search(ctx context.Context, user *domain.User, request domain.SearchContactRequest) ([]domain.ContactResponse, *domain.Paging, error)
}

type contactUseCase struct {
	contacts  ports.ContactStorage
	ownership OwnershipResolver
	pipeline  *validation.Pipeline
	logger    *slog.Logger
}

// NewContactUseCase создает новый экземпляр ContactUseCase.
func NewContactUseCase(contacts ports.ContactStorage, ownership OwnershipResolver, pipeline *validation.Pipeline, logger *slog.Logger) ContactUseCase {
	return &contactUseCase{
		contacts:  contacts,
		ownership: ownership,
		pipeline:  pipeline,
		logger:    logger,
	}
}

func (uc *contactUseCase) Create(ctx context.Context, user *domain.User, request domain.CreateContactRequest) (*domain.ContactResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		UserID:    user.ID,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
	}
	if err := uc.contacts.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании контакта: %w", err)
	}

	uc.logger.Info("contact created", "user_id", user.ID, "contact_id", contact.ID)
	return domain.ToContactResponse(contact), nil
}

func (uc *contactUseCase) Get(ctx context.Context, user *domain.User, contactID int64) (*domain.ContactResponse, error) {
	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}
	return domain.ToContactResponse(contact), nil
}

func (uc *contactUseCase) Update(ctx context.Context, user *domain.User, contactID int64, request domain.UpdateContactRequest) (*domain.ContactResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = request.FirstName
	contact.LastName = request.LastName
	contact.Email = request.Email
	contact.Phone = request.Phone

	if err := uc.contacts.UpdateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении контакта: %w", err)
	}

	uc.logger.Info("contact updated", "user_id", user.ID, "contact_id", contact.ID)
	return domain.ToContactResponse(contact), nil
}

func (uc *contactUseCase) Remove(ctx context.Context, user *domain.User, contactID int64) (*domain.ContactResponse, error) {
	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	if err := uc.contacts.DeleteContact(ctx, contact.ID); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при удалении контакта: %w", err)
	}

	uc.logger.Info("contact deleted", "user_id", user.ID, "contact_id", contact.ID)
	return domain.ToContactResponse(contact), nil
}

func (uc *contactUseCase) Search(ctx context.Context, user *domain.User, request domain.SearchContactRequest) ([]domain.ContactResponse, *domain.Paging, error) {
	normalizeSearchRequest(&request)
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, nil, err
	}

	filter := domain.ContactFilter{
		Name:  request.Name,
		Email: request.Email,
		Phone: request.Phone,
	}

	contacts, err := uc.contacts.SearchContacts(ctx, user.ID, filter, request.Size, searchOffset(request))
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: ошибка при поиске контактов: %w", err)
	}

	total, err := uc.contacts.CountContacts(ctx, user.ID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: ошибка при подсчете контактов: %w", err)
	}

	responses := make([]domain.ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, *domain.ToContactResponse(&contacts[i]))
	}

	uc.logger.Info("contact search completed",
		"user_id", user.ID,
		"found", len(responses),
		"total", total,
		"page", request.Page,
		"size", request.Size,
	)
	return responses, buildPaging(request, total), nil
}
