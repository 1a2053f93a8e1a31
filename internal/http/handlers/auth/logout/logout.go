// Package logout реализует HTTP-обработчик завершения сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/lib/sl"
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

// ServeHTTP уничтожает сессию на сервере и просит клиента удалить cookie.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := h.cookies.Read(r)
	if token != "" {
		if err := h.sessions.Delete(r.Context(), token); err != nil {
			log.Error("failed to delete session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
	}
	h.cookies.Clear(w)

	log.Info("session destroyed")
	render.JSON(w, r, response.OK())
}
