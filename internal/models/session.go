package models

// Session хранит серверное состояние аутентифицированной сессии.
// Клиент держит только непрозрачный токен в cookie.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
