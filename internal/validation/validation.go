package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Pipeline проверяет входящие DTO по декларативным схемам (validate-тегам)
// ДО любой бизнес-логики и обращений к базе. При нарушении возвращает
// domain.ValidationError со списком всех нарушенных полей.
type Pipeline struct {
	validate *validator.Validate
}

// NewPipeline создает пайплайн валидации.
// Имена полей в сообщениях берутся из json-тегов, как их видит клиент.
func NewPipeline() *Pipeline {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Pipeline{validate: v}
}

// Validate прогоняет запрос через схему. Возвращает nil либо
// *domain.ValidationError, перечисляющую каждое нарушение.
func (p *Pipeline) Validate(request any) error {
	err := p.validate.Struct(request)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError и прочая экзотика: считаем сам запрос невалидным
		return domain.NewValidationError("request: invalid")
	}

	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, fieldViolation(fe))
	}
	return &domain.ValidationError{Violations: violations}
}

// fieldViolation формирует человекочитаемое описание нарушения одного поля.
func fieldViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email", fe.Field())
	default:
		return fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag())
	}
}

// ParseID приводит path-параметр к положительному int64.
// Нечисловое или неположительное значение — ошибка валидации, опять же
// до какого-либо похода в базу.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("%s: must be a positive integer", name))
	}
	return id, nil
}
