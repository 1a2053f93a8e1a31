// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Успешная регистрация сразу открывает сессию: клиент получает cookie
// с токеном и не должен логиниться отдельно.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/http/validation"
	"github.com/magabrotheeeer/timesheet-service/internal/lib/sl"
	"github.com/magabrotheeeer/timesheet-service/internal/models"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

// Request — входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=30,username_charset"`
	Password string `json:"password" validate:"required,min=8,max=128,password_strength"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, rawPassword string) (int, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	sessions session.Store
	cookies  *cookies.Helper
	validate *validator.Validate
}

func New(log *slog.Logger, service Service, sessions session.Store, ck *cookies.Helper) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		cookies:  ck,
		validate: validation.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userID, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Info("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	token, err := h.sessions.Create(r.Context(), models.Session{
		UserID:   userID,
		Username: req.Username,
	})
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}
	h.cookies.Set(w, token)

	log.Info("user registered", slog.Int("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_id":  userID,
		"username": req.Username,
	}))
}
