// Package app собирает приложение: маршруты, зависимости и жизненный цикл HTTP-сервера.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/timesheet/get"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/timesheet/save"
	"github.com/magabrotheeeer/timesheet-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
	authservice "github.com/magabrotheeeer/timesheet-service/internal/services/auth"
	tsservice "github.com/magabrotheeeer/timesheet-service/internal/services/timesheet"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Лимитер аутентификации стоит перед проверкой учётных данных: шестая
// неудачная попытка логина в окне получает 429, а не 401.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService, timesheetService *tsservice.TimesheetService,
	sessions session.Store, ck *cookies.Helper,
	authLimiter, apiLimiter *middlewarectx.ClientLimiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	authLimit := middlewarectx.RateLimitMiddleware(authLimiter, "too many attempts, try again later", logger)
	apiLimit := middlewarectx.RateLimitMiddleware(apiLimiter, "too many requests, try again later", logger)
	requireSession := middlewarectx.SessionMiddleware(sessions, ck, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Открытые конечные точки
			r.With(authLimit).Post("/register", register.New(logger, authService, sessions, ck).ServeHTTP)
			r.With(authLimit).Post("/login", login.New(logger, authService, sessions, ck).ServeHTTP)
			r.Get("/me", me.New(logger, sessions, ck).ServeHTTP)

			// Конечные точки с проверкой сессии
			r.With(requireSession).Post("/logout", logout.New(logger, sessions, ck).ServeHTTP)
			r.With(requireSession, authLimit).Post("/change-password", changepassword.New(logger, authService).ServeHTTP)
		})

		r.Route("/timesheet", func(r chi.Router) {
			r.Use(requireSession, apiLimit)
			r.Get("/{year}/{month}", get.New(logger, timesheetService).ServeHTTP)
			r.Post("/", save.New(logger, timesheetService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
