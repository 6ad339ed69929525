package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// respondWithJSON — отправляет конверт ответа клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload domain.WebResponse, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondSuccess — успешный ответ с данными.
func respondSuccess(w http.ResponseWriter, code int, data any, logger *slog.Logger) {
	respondWithJSON(w, code, domain.WebResponse{
		Status: "success",
		Code:   code,
		Data:   data,
	}, logger)
}

// respondSuccessMessage — успешный ответ без данных, только с сообщением.
func respondSuccessMessage(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, domain.WebResponse{
		Status:  "success",
		Code:    code,
		Message: message,
	}, logger)
}

// respondSuccessPaged — успешный ответ поисковой выдачи с блоком пагинации.
func respondSuccessPaged(w http.ResponseWriter, code int, data any, paging *domain.Paging, logger *slog.Logger) {
	respondWithJSON(w, code, domain.WebResponse{
		Status: "success",
		Code:   code,
		Data:   data,
		Paging: paging,
	}, logger)
}

// respondError — ответ с ошибкой в том же конверте.
func respondError(w http.ResponseWriter, code int, errs any, logger *slog.Logger) {
	respondWithJSON(w, code, domain.WebResponse{
		Status: "error",
		Code:   code,
		Errors: errs,
	}, logger)
}

// respondDomainError транслирует таксономию ошибок ядра в HTTP.
// notFoundMessage подставляется для ErrNotFound ("Contact not found" и т.п.) —
// текст одинаков для несуществующего И чужого ресурса.
// Неопознанные ошибки уходят как 500 без исходного текста.
func respondDomainError(w http.ResponseWriter, err error, notFoundMessage string, logger *slog.Logger) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Violations, logger)
	case errors.Is(err, domain.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, "Username is already taken", logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "Username or password is invalid", logger)
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "Unauthorized", logger)
	case errors.Is(err, domain.ErrNotFound):
		var notFoundErr *domain.NotFoundError
		if errors.As(err, &notFoundErr) {
			notFoundMessage = notFoundErr.Message
		}
		if notFoundMessage == "" {
			notFoundMessage = "Not found"
		}
		respondError(w, http.StatusNotFound, notFoundMessage, logger)
	default:
		logger.Error("unexpected error", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// decodeJSON читает тело запроса; битый JSON — ошибка валидации, а не 500.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("request body: must be valid JSON")
	}
	return nil
}
