package models

import (
	"encoding/json"
	"time"
)

// Статусы табеля рабочего времени.
const (
	// StatusDraft — черновик, единственный статус, который пишет upsert.
	StatusDraft = "draft"
	// StatusSubmitted — отправленный табель, хранится, но переход не реализован.
	StatusSubmitted = "submitted"
	// StatusNew — сентинел для ещё не созданного табеля, в базе не хранится.
	StatusNew = "new"
)

// Timesheet представляет табель рабочего времени пользователя за месяц.
// Ключ уникальности — (UserID, Year, Month), месяц нумеруется с нуля (0–11).
type Timesheet struct {
	ID        int             // Идентификатор записи
	UserID    int             // Владелец табеля
	Year      int             // Год, диапазон 2020–2100
	Month     int             // Месяц, 0–11
	Data      json.RawMessage // Непрозрачный JSON-объект с записями по дням
	Status    string          // draft или submitted
	UpdatedAt time.Time       // Обновляется при каждой записи
}
