package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/usecase"
)

// App — собранное приложение. Один бинарник, два режима:
// server (HTTP API) и worker (обработка заданий экспорта из очереди).
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	userUseCase    usecase.UserUseCase
	contactUseCase usecase.ContactUseCase
	addressUseCase usecase.AddressUseCase
	exportUseCase  usecase.ExportUseCase

	exportConsumer ports.ContactExportConsumer

	// closers закрываются при завершении в обратном порядке регистрации.
	closers []io.Closer
}

// NewApp собирает приложение из готовых зависимостей.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	contactUseCase usecase.ContactUseCase,
	addressUseCase usecase.AddressUseCase,
	exportUseCase usecase.ExportUseCase,
	exportConsumer ports.ContactExportConsumer,
	closers ...io.Closer,
) *App {
	return &App{
		cfg:            cfg,
		logger:         logger,
		userUseCase:    userUseCase,
		contactUseCase: contactUseCase,
		addressUseCase: addressUseCase,
		exportUseCase:  exportUseCase,
		exportConsumer: exportConsumer,
		closers:        closers,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown finished with error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ошибка закрытия ресурса: %w", err)
		}
	}
	return firstErr
}
