// Package middlewarectx содержит HTTP middleware для проверки сессии,
// ограничения частоты запросов и сбора метрик.
//
// SessionMiddleware читает сессионный токен из cookie, находит сессию
// в хранилище и в случае успеха добавляет в контекст идентификатор
// и имя пользователя для дальнейшего использования в обработчиках.
//
// В случае отсутствующей или истекшей сессии возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/lib/sl"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// User — ключ для имени пользователя в контексте
	User Key = "username"
)

// SessionMiddleware возвращает HTTP middleware, который проверяет живую сессию.
//
// Проверка выполняется до любого обращения к хранилищам: без сессии запрос
// завершается с HTTP статусом 401 Unauthorized.
func SessionMiddleware(store session.Store, ck *cookies.Helper, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := ck.Read(r)
			if token == "" {
				log.Info("request without session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			sess, err := store.Get(r.Context(), token)
			if err != nil {
				log.Info("session not found or expired", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, sess.UserID)
			ctx = context.WithValue(ctx, User, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
