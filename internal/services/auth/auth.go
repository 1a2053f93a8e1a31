// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/timesheet-service/internal/lib/password"
	"github.com/magabrotheeeer/timesheet-service/internal/models"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

// ErrInvalidCredentials возвращается и для неизвестного пользователя, и для
// неверного пароля. Наружу причины не различаются, чтобы нельзя было
// перебором выяснить занятые имена.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int) (*models.User, error)

	// UpdatePasswordHash заменяет хэш пароля целиком.
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
}

// AuthService отвечает за регистрацию, проверку учётных данных и смену пароля.
type AuthService struct {
	users UserRepository
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{
		users: users,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
// При занятом имени пробрасывает storage.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (int, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет учётные данные и возвращает пользователя.
// Неизвестное имя и неверный пароль дают одинаковый ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword меняет пароль пользователя после проверки текущего.
// Любое несовпадение текущего пароля оставляет хранимый хэш нетронутым.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	const op = "services.auth.ChangePassword"
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	newHash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
