// Package me реализует HTTP-обработчик проверки текущей сессии.
//
// Маршрут открыт: вместо middleware обработчик сам смотрит cookie,
// чтобы анонимный клиент получал аккуратный 401, а не отказ доступа.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
)

type Handler struct {
	log      *slog.Logger
	sessions session.Store
	cookies  *cookies.Helper
}

func New(log *slog.Logger, sessions session.Store, ck *cookies.Helper) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		cookies:  ck,
	}
}

// ServeHTTP возвращает идентичность владельца живой сессии или 401.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := h.cookies.Read(r)
	if token == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sess, err := h.sessions.Get(r.Context(), token)
	if err != nil {
		log.Info("session not found or expired")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_id":  sess.UserID,
		"username": sess.Username,
	}))
}
