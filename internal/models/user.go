// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Уникальный числовой идентификатор пользователя
	Username     string    // Имя пользователя (уникальное, регистрозависимое)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, по умолчанию "user"
	CreatedAt    time.Time // Дата создания учётной записи
}
