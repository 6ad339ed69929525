package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

// AddressUseCase определяет интерфейс для бизнес-логики работы с адресами.
// Адрес вложен в контакт, поэтому каждая операция сперва разрешает контакт
// владельцем, и только потом адрес в рамках этого контакта.
type AddressUseCase interface {
	// Create создает адрес под контактом принципала.
	Create(ctx context.Context, user *domain.User, contactID int64, request domain.CreateAddressRequest) (*domain.AddressResponse, error)

	// Get возвращает адрес по цепочке user→contact→address.
	Get(ctx context.Context, user *domain.User, contactID, addressID int64) (*domain.AddressResponse, error)

	// Update применяет валидированные поля адреса.
	Update(ctx context.Context, user *domain.User, contactID, addressID int64, request domain.UpdateAddressRequest) (*domain.AddressResponse, error)

	// Remove жестко удаляет адрес и возвращает снимок до удаления.
	Remove(ctx context.Context, user *domain.User, contactID, addressID int64) (*domain.AddressResponse, error)

	// List возвращает все адреса контакта принципала.
	List(ctx context.Context, user *domain.User, contactID int64) ([]domain.AddressResponse, error)
}

type addressUseCase struct {
	addresses ports.AddressStorage
	ownership OwnershipResolver
	pipeline  *validation.Pipeline
	logger    *slog.Logger
}

// NewAddressUseCase создает новый экземпляр AddressUseCase.
func NewAddressUseCase(addresses ports.AddressStorage, ownership OwnershipResolver, pipeline *validation.Pipeline, logger *slog.Logger) AddressUseCase {
	return &addressUseCase{
		addresses: addresses,
		ownership: ownership,
		pipeline:  pipeline,
		logger:    logger,
	}
}

func (uc *addressUseCase) Create(ctx context.Context, user *domain.User, contactID int64, request domain.CreateAddressRequest) (*domain.AddressResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	address := &domain.Address{
		ContactID:  contact.ID,
		Street:     request.Street,
		City:       request.City,
		Province:   request.Province,
		Country:    request.Country,
		PostalCode: request.PostalCode,
	}
	if err := uc.addresses.SaveAddress(ctx, address); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании адреса: %w", err)
	}

	uc.logger.Info("address created", "user_id", user.ID, "contact_id", contact.ID, "address_id", address.ID)
	return domain.ToAddressResponse(address), nil
}

func (uc *addressUseCase) Get(ctx context.Context, user *domain.User, contactID, addressID int64) (*domain.AddressResponse, error) {
	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	address, err := uc.ownership.ResolveAddress(ctx, contact.ID, addressID)
	if err != nil {
		return nil, err
	}
	return domain.ToAddressResponse(address), nil
}

func (uc *addressUseCase) Update(ctx context.Context, user *domain.User, contactID, addressID int64, request domain.UpdateAddressRequest) (*domain.AddressResponse, error) {
	if err := uc.pipeline.Validate(request); err != nil {
		return nil, err
	}

	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	address, err := uc.ownership.ResolveAddress(ctx, contact.ID, addressID)
	if err != nil {
		return nil, err
	}

	address.Street = request.Street
	address.City = request.City
	address.Province = request.Province
	address.Country = request.Country
	address.PostalCode = request.PostalCode

	if err := uc.addresses.UpdateAddress(ctx, address); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении адреса: %w", err)
	}

	uc.logger.Info("address updated", "user_id", user.ID, "contact_id", contact.ID, "address_id", address.ID)
	return domain.ToAddressResponse(address), nil
}

func (uc *addressUseCase) Remove(ctx context.Context, user *domain.User, contactID, addressID int64) (*domain.AddressResponse, error) {
	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	address, err := uc.ownership.ResolveAddress(ctx, contact.ID, addressID)
	if err != nil {
		return nil, err
	}

	if err := uc.addresses.DeleteAddress(ctx, address.ID); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при удалении адреса: %w", err)
	}

	uc.logger.Info("address deleted", "user_id", user.ID, "contact_id", contact.ID, "address_id", address.ID)
	return domain.ToAddressResponse(address), nil
}

func (uc *addressUseCase) List(ctx context.Context, user *domain.User, contactID int64) ([]domain.AddressResponse, error) {
	contact, err := uc.ownership.ResolveContact(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	addresses, err := uc.addresses.ListAddressesByContact(ctx, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении адресов контакта: %w", err)
	}

	responses := make([]domain.AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, *domain.ToAddressResponse(&addresses[i]))
	}
	return responses, nil
}
