package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/timesheet-service/internal/models"
)

// GetTimesheet возвращает табель по ключу (user_id, year, month).
// Отсутствие записи — не сбой, а отдельное состояние: ErrTimesheetNotFound.
func (s *Storage) GetTimesheet(ctx context.Context, userID, year, month int) (*models.Timesheet, error) {
	const op = "storage.GetTimesheet"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, year, month, data, status, updated_at
			  FROM timesheets
			  WHERE user_id = $1 AND year = $2 AND month = $3`
	t := &models.Timesheet{}
	row := s.DB.QueryRowContext(ctx, query, userID, year, month)

	var data []byte
	if err := row.Scan(&t.ID, &t.UserID, &t.Year, &t.Month,
		&data, &t.Status, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTimesheetNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	t.Data = json.RawMessage(data)
	return t, nil
}

// UpsertTimesheet атомарно создаёт или заменяет табель по ключу (user_id, year, month).
// Один оператор INSERT ... ON CONFLICT: двух строк по одному ключу не бывает,
// из двух конкурирующих записей выигрывает последняя. Статус при каждой записи
// выставляется в draft, включая перезапись ранее отправленного табеля.
func (s *Storage) UpsertTimesheet(ctx context.Context, userID, year, month int, data json.RawMessage) error {
	const op = "storage.UpsertTimesheet"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO timesheets (user_id, year, month, data, status, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  ON CONFLICT (user_id, year, month)
			  DO UPDATE SET data = EXCLUDED.data, status = EXCLUDED.status, updated_at = NOW()`
	_, err := s.DB.ExecContext(ctx, query, userID, year, month, []byte(data), models.StatusDraft)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
