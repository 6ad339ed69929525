package ports

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/messaging/payloads"
)

// ContactExportPublisher определяет методы для публикации заданий на экспорт контактов.
// Этот интерфейс используется обработчиком HTTP-запросов.
type ContactExportPublisher interface {
	PublishContactExportRequest(ctx context.Context, payload payloads.ContactExportPayload) error
}

// ContactExportConsumer определяет методы для потребления заданий на экспорт,
// будет использоваться воркером для получения задач из очереди.
type ContactExportConsumer interface {
	// StartConsumingContactExportRequests начинает прослушивание очереди экспорта
	// и вызывает handler для каждого полученного задания.
	StartConsumingContactExportRequests(ctx context.Context, handler func(context.Context, payloads.ContactExportPayload) error) error
}
