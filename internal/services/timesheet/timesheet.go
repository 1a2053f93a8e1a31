// Package services содержит бизнес-логику для работы с табелями и кешированием.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/timesheet-service/internal/models"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

// cacheTTL ограничивает жизнь табеля в кеше между записями.
const cacheTTL = 5 * time.Minute

// TimesheetRepository определяет методы для работы с табелями в хранилище.
type TimesheetRepository interface {
	// GetTimesheet возвращает табель по ключу (user_id, year, month).
	GetTimesheet(ctx context.Context, userID, year, month int) (*models.Timesheet, error)
	// UpsertTimesheet атомарно создаёт или заменяет табель по ключу.
	UpsertTimesheet(ctx context.Context, userID, year, month int, data json.RawMessage) error
}

// Cache определяет методы кеширования табелей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Month содержит данные табеля за месяц в виде, который уходит клиенту.
type Month struct {
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

// TimesheetService инкапсулирует доступ к хранилищу табелей и кешу.
type TimesheetService struct {
	repo  TimesheetRepository
	cache Cache
	log   *slog.Logger
}

// NewTimesheetService создает новый экземпляр TimesheetService.
func NewTimesheetService(repo TimesheetRepository, cache Cache, log *slog.Logger) *TimesheetService {
	return &TimesheetService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(userID, year, month int) string {
	return fmt.Sprintf("timesheet:%d:%d:%d", userID, year, month)
}

// Get возвращает табель за месяц. Отсутствие записи — не ошибка:
// клиент получает пустой объект со статусом "new".
func (s *TimesheetService) Get(ctx context.Context, userID, year, month int) (*Month, error) {
	const op = "services.timesheet.Get"

	key := cacheKey(userID, year, month)
	var cached Month
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	t, err := s.repo.GetTimesheet(ctx, userID, year, month)
	if err != nil {
		if errors.Is(err, storage.ErrTimesheetNotFound) {
			return &Month{
				Data:   json.RawMessage(`{}`),
				Status: models.StatusNew,
			}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Month{Data: t.Data, Status: t.Status}
	if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// Save атомарно создаёт или заменяет табель и сбрасывает кеш ключа.
func (s *TimesheetService) Save(ctx context.Context, userID, year, month int, data json.RawMessage) error {
	const op = "services.timesheet.Save"

	if err := s.repo.UpsertTimesheet(ctx, userID, year, month, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := cacheKey(userID, year, month)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
	}
	return nil
}
