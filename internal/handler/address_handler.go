package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

// AddressHandler — обработчик HTTP-запросов для работы с адресами контактов.
// Все маршруты вложены под /v1/contact/{contactId}: адрес недостижим
// мимо контакта своего владельца.
type AddressHandler struct {
	addressUseCase usecase.AddressUseCase
	logger         *slog.Logger
}

// NewAddressHandler создаёт новый экземпляр AddressHandler.
func NewAddressHandler(uc usecase.AddressUseCase, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		addressUseCase: uc,
		logger:         logger,
	}
}

// Create — POST /v1/contact/{contactId}/address.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	contactID, err := validation.ParseID("contactId", chi.URLParam(r, "contactId"))
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	var request domain.CreateAddressRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.addressUseCase.Create(r.Context(), user, contactID, request)
	if err != nil {
		respondDomainError(w, err, "Contact not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusCreated, result, h.logger)
}

// Get — GET /v1/contact/{contactId}/address/{addressId}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	contactID, addressID, err := parseAddressPath(r)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.addressUseCase.Get(r.Context(), user, contactID, addressID)
	if err != nil {
		respondDomainError(w, err, "Address not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Update — PUT /v1/contact/{contactId}/address/{addressId}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	contactID, addressID, err := parseAddressPath(r)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	var request domain.UpdateAddressRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.addressUseCase.Update(r.Context(), user, contactID, addressID, request)
	if err != nil {
		respondDomainError(w, err, "Address not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Delete — DELETE /v1/contact/{contactId}/address/{addressId}.
// Возвращает снимок адреса на момент до удаления.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	contactID, addressID, err := parseAddressPath(r)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.addressUseCase.Remove(r.Context(), user, contactID, addressID)
	if err != nil {
		respondDomainError(w, err, "Address not found", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, domain.WebResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Data:    result,
		Message: "Address deleted successfully",
	}, h.logger)
}

// List — GET /v1/contact/{contactId}/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	contactID, err := validation.ParseID("contactId", chi.URLParam(r, "contactId"))
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	results, err := h.addressUseCase.List(r.Context(), user, contactID)
	if err != nil {
		respondDomainError(w, err, "Contact not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, results, h.logger)
}

func parseAddressPath(r *http.Request) (contactID, addressID int64, err error) {
	contactID, err = validation.ParseID("contactId", chi.URLParam(r, "contactId"))
	if err != nil {
		return 0, 0, err
	}
	addressID, err = validation.ParseID("addressId", chi.URLParam(r, "addressId"))
	if err != nil {
		return 0, 0, err
	}
	return contactID, addressID, nil
}
