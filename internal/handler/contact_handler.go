package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

// ContactHandler — обработчик HTTP-запросов для работы с контактами.
type ContactHandler struct {
	contactUseCase usecase.ContactUseCase
	exportUseCase  usecase.ExportUseCase
	logger         *slog.Logger
}

// NewContactHandler создаёт новый экземпляр ContactHandler.
func NewContactHandler(contacts usecase.ContactUseCase, exports usecase.ExportUseCase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contacts,
		exportUseCase:  exports,
		logger:         logger,
	}
}

// Create — POST /v1/contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	var request domain.CreateContactRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.contactUseCase.Create(r.Context(), user, request)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccess(w, http.StatusCreated, result, h.logger)
}

// Get — GET /v1/contact/{contactId}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.contactUseCase.Get(r.Context(), user, contactID)
	if err != nil {
		respondDomainError(w, err, "Contact not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Update — PUT /v1/contact/{contactId}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateContactRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.contactUseCase.Update(r.Context(), user, contactID, request)
	if err != nil {
		respondDomainError(w, err, "Contact not found", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Delete — DELETE /v1/contact/{contactId}.
// Возвращает снимок контакта на момент до удаления.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.contactUseCase.Remove(r.Context(), user, contactID)
	if err != nil {
		respondDomainError(w, err, "Contact not found", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, domain.WebResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Data:    result,
		Message: "Contact deleted successfully",
	}, h.logger)
}

// Search — GET /v1/contacts.
// Фильтры name/email/phone комбинируются через AND, пагинация в query.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	request, err := parseSearchRequest(r)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	results, paging, err := h.contactUseCase.Search(r.Context(), user, request)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccessPaged(w, http.StatusOK, results, paging, h.logger)
}

// RequestExport — POST /v1/contacts/export.
// Ставит асинхронное задание на экспорт и сразу возвращает 202 с ключом объекта.
func (h *ContactHandler) RequestExport(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	objectKey, err := h.exportUseCase.RequestExport(r.Context(), user)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondWithJSON(w, http.StatusAccepted, domain.WebResponse{
		Status:  "success",
		Code:    http.StatusAccepted,
		Data:    map[string]string{"object_key": objectKey},
		Message: "Contact export scheduled",
	}, h.logger)
}

// parseSearchRequest читает фильтры и пагинацию из query-параметров.
// Отсутствующие page/size остаются нулевыми и получают дефолты в usecase,
// а нечисловые и неположительные значения отклоняются здесь.
func parseSearchRequest(r *http.Request) (domain.SearchContactRequest, error) {
	query := r.URL.Query()

	request := domain.SearchContactRequest{
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Phone: query.Get("phone"),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return request, domain.NewValidationError("page: must be a positive integer")
		}
		request.Page = page
	}
	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return request, domain.NewValidationError("size: must be a positive integer")
		}
		request.Size = size
	}
	return request, nil
}
