// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и табелями рабочего времени.
// Уникальность username и ключа (user_id, year, month) обеспечивается
// уникальными индексами базы, а не блокировками на уровне приложения.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки-сентинелы уровня хранилища.
var (
	// ErrUserExists возвращается при нарушении уникальности username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrTimesheetNotFound возвращается, если табель за месяц ещё не создавался.
	ErrTimesheetNotFound = errors.New("timesheet not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и табелями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}
