// Package session реализует серверное хранилище сессий.
//
// Клиенту выдаётся непрозрачный токен (uuid), по которому сервер хранит
// привязку к пользователю с ограниченным временем жизни. Хранилище
// подключаемое: redis для многоэкземплярного развёртывания, память процесса
// для одного экземпляра и тестов.
package session

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/timesheet-service/internal/models"
)

// ErrSessionNotFound возвращается, если токен неизвестен или сессия истекла.
var ErrSessionNotFound = errors.New("session not found")

// Store описывает контракт хранилища сессий.
type Store interface {
	// Create сохраняет сессию и возвращает новый непрозрачный токен.
	Create(ctx context.Context, sess models.Session) (string, error)

	// Get возвращает сессию по токену или ErrSessionNotFound.
	Get(ctx context.Context, token string) (*models.Session, error)

	// Delete уничтожает сессию. Отсутствующий токен ошибкой не считается.
	Delete(ctx context.Context, token string) error
}
