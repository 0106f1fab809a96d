// Package accountservice собирает маршруты и жизненный цикл HTTP API.
package accountservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/profile/get"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/profile/list"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/profile/remove"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, accountService *services.AccountService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/signup", signup.New(logger, accountService).ServeHTTP)
		r.Post("/login", login.New(logger, accountService).ServeHTTP)
		r.Post("/forgot", forgot.New(logger, accountService).ServeHTTP)
		r.Post("/reset/{token}", reset.New(logger, accountService).ServeHTTP)
		r.Get("/profiles", list.New(logger, accountService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(accountService, logger))
			r.Get("/profiles/{userId}", get.New(logger, accountService).ServeHTTP)
			r.Patch("/update", update.New(logger, accountService).ServeHTTP)
			r.Delete("/delete", remove.New(logger, accountService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
