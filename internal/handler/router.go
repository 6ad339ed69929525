package handler

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/ContactBook/internal/usecase"
)

// NewRouter собирает маршрутизатор API.
// Регистрация и логин публичны, все остальное за Authenticator.
func NewRouter(
	userUseCase usecase.UserUseCase,
	contactUseCase usecase.ContactUseCase,
	addressUseCase usecase.AddressUseCase,
	exportUseCase usecase.ExportUseCase,
	requestTimeout time.Duration,
	logger *slog.Logger,
) chi.Router {
	userHandler := NewUserHandler(userUseCase, logger)
	contactHandler := NewContactHandler(contactUseCase, exportUseCase, logger)
	addressHandler := NewAddressHandler(addressUseCase, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(RequestLogger(logger))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(userUseCase, logger))

			r.Get("/user", userHandler.Get)
			r.Patch("/user", userHandler.Update)
			r.Delete("/user", userHandler.Logout)

			r.Post("/contact", contactHandler.Create)
			r.Get("/contacts", contactHandler.Search)
			r.Post("/contacts/export", contactHandler.RequestExport)

			r.Route("/contact/{contactId}", func(r chi.Router) {
				r.Get("/", contactHandler.Get)
				r.Put("/", contactHandler.Update)
				r.Delete("/", contactHandler.Delete)

				r.Post("/address", addressHandler.Create)
				r.Get("/addresses", addressHandler.List)

				r.Route("/address/{addressId}", func(r chi.Router) {
					r.Get("/", addressHandler.Get)
					r.Put("/", addressHandler.Update)
					r.Delete("/", addressHandler.Delete)
				})
			})
		})
	})

	return r
}
