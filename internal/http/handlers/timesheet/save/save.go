// Package save реализует HTTP-обработчик сохранения табеля за месяц.
//
// Сохранение идемпотентно: повторная запись по тому же ключу
// (пользователь, год, месяц) заменяет данные, не создавая второй строки.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/timesheet-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/http/validation"
	"github.com/magabrotheeeer/timesheet-service/internal/lib/sl"
)

// Request — входные данные для сохранения табеля.
// Месяц передаётся указателем: ноль (январь) — допустимое значение,
// которое required на int съел бы как незаполненное поле.
type Request struct {
	Year  int             `json:"year" validate:"required,gte=2020,lte=2100"`
	Month *int            `json:"month" validate:"required,gte=0,lte=11"`
	Data  json.RawMessage `json:"data" validate:"required,json_object"`
}

// Service описывает интерфейс бизнес-логики сохранения табеля.
type Service interface {
	Save(ctx context.Context, userID, year, month int, data json.RawMessage) error
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить табель за месяц
// @Description Создает или заменяет табель пользователя по ключу (год, месяц).
// @Tags Timesheet
// @Accept  json
// @Produce  json
// @Param request body Request true "Год, месяц и данные табеля"
// @Success 200 {object} response.Response "Табель сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении"
// @Router /api/timesheet [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timesheet.save"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Save(r.Context(), userID, req.Year, *req.Month, req.Data); err != nil {
		log.Error("failed to save timesheet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save timesheet"))
		return
	}

	log.Info("timesheet saved",
		slog.Int("user_id", userID),
		slog.Int("year", req.Year),
		slog.Int("month", *req.Month))
	render.JSON(w, r, response.OK())
}
