package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/ContactBook/internal/messaging/payloads"
)

// runWorker запускает потребителя очереди экспорта и блокируется до отмены контекста.
func (a *App) runWorker(ctx context.Context) error {
	a.logger.Info("worker started, waiting for export jobs")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ContactExportPayload) error {
		started := time.Now()
		a.logger.Info("processing contact export job",
			"user_id", payload.UserID,
			"object_key", payload.ObjectKey,
		)

		if err := a.exportUseCase.BuildAndUploadExport(ctx, payload); err != nil {
			a.logger.Error("contact export job failed",
				"user_id", payload.UserID,
				"object_key", payload.ObjectKey,
				"error", err,
			)
			return err
		}

		a.logger.Info("contact export job completed",
			"user_id", payload.UserID,
			"object_key", payload.ObjectKey,
			"duration_ms", time.Since(started).Milliseconds(),
		)
		return nil
	}

	if err := a.exportConsumer.StartConsumingContactExportRequests(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received, stopping worker")

	cancelWorker()

	// небольшая пауза, чтобы обработчик успел доподтвердить текущее сообщение
	time.Sleep(2 * time.Second)
	a.logger.Info("worker stopped")
	return nil
}
