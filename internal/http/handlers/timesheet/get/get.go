// Package get реализует HTTP-обработчик чтения табеля за месяц.
//
// Год и месяц приходят в пути запроса, месяц нумеруется с нуля в
// соответствии с календарём на клиенте. Отсутствующий табель — не ошибка:
// клиент получает пустой объект со статусом "new".
package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/timesheet-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/timesheet-service/internal/http/response"
	"github.com/magabrotheeeer/timesheet-service/internal/lib/sl"
	tsservice "github.com/magabrotheeeer/timesheet-service/internal/services/timesheet"
)

// Service описывает интерфейс бизнес-логики чтения табеля.
type Service interface {
	Get(ctx context.Context, userID, year, month int) (*tsservice.Month, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить табель за месяц
// @Description Возвращает табель пользователя за указанный год и месяц (0–11).
// @Tags Timesheet
// @Produce  json
// @Param year path int true "Год (2020–2100)"
// @Param month path int true "Месяц (0–11)"
// @Success 200 {object} map[string]any "Табель или пустой объект со статусом new"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры пути"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/timesheet/{year}/{month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timesheet.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, errYear := strconv.Atoi(chi.URLParam(r, "year"))
	month, errMonth := strconv.Atoi(chi.URLParam(r, "month"))
	if errYear != nil || errMonth != nil ||
		year < 2020 || year > 2100 || month < 0 || month > 11 {
		log.Info("invalid path parameters",
			slog.String("year", chi.URLParam(r, "year")),
			slog.String("month", chi.URLParam(r, "month")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid year or month"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.Get(r.Context(), userID, year, month)
	if err != nil {
		log.Error("failed to read timesheet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
