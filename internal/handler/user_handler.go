package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/usecase"
)

// UserHandler — обработчик HTTP-запросов для работы с учетными записями.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		logger:      logger,
	}
}

// Register — POST /v1/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.userUseCase.Register(r.Context(), request)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccess(w, http.StatusCreated, result, h.logger)
}

// Login — POST /v1/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request domain.LoginRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.userUseCase.Login(r.Context(), request)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Get — GET /v1/user (защищенный).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, h.userUseCase.Get(r.Context(), user), h.logger)
}

// Update — PATCH /v1/user (защищенный).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	var request domain.UpdateUserRequest
	if err := decodeJSON(r, &request); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	result, err := h.userUseCase.Update(r.Context(), user, request)
	if err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccess(w, http.StatusOK, result, h.logger)
}

// Logout — DELETE /v1/user (защищенный).
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, "", h.logger)
		return
	}

	if err := h.userUseCase.Logout(r.Context(), user); err != nil {
		respondDomainError(w, err, "", h.logger)
		return
	}

	respondSuccessMessage(w, http.StatusOK, "Logout success", h.logger)
}
