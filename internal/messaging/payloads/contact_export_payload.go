package payloads

// ContactExportPayload представляет задание на экспорт контактов пользователя,
// передаваемое через RabbitMQ от сервера к воркеру.
type ContactExportPayload struct {
	UserID    int64  `json:"user_id"`
	ObjectKey string `json:"object_key"`
}
