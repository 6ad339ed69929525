package domain

import (
	"errors"
	"strings"
)

// Сентинельные ошибки ядра. Хендлеры транслируют их в конверт ответа,
// всё остальное уходит наружу как 500 без исходного текста.
var (
	// ErrNotFound — ресурс отсутствует ЛИБО принадлежит другому пользователю.
	// Ответ в обоих случаях одинаковый, чтобы нельзя было перебором выяснить
	// существование чужих ресурсов.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthenticated — токен отсутствует или никому не принадлежит.
	ErrUnauthenticated = errors.New("unauthorized")

	// ErrInvalidCredentials — неизвестный username и неверный пароль дают
	// одну и ту же ошибку, чтобы не раскрывать, что именно не совпало.
	ErrInvalidCredentials = errors.New("username or password is invalid")

	// ErrUsernameTaken — username уже занят (точное совпадение, с учетом регистра).
	ErrUsernameTaken = errors.New("username is already taken")
)

// NotFoundError — ErrNotFound с готовым клиентским текстом
// ("Contact not found", "Address not found"). Текст зависит только от типа
// ресурса, не от причины: чужой ресурс неотличим от несуществующего.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError создает NotFoundError с клиентским сообщением.
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ValidationError перечисляет ВСЕ нарушенные ограничения полей запроса,
// а не только первое. Поднимается до любого обращения к базе.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Violations, "; ")
}

// NewValidationError собирает ошибку валидации из списка нарушений.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}
