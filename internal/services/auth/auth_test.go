package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/timesheet-service/internal/lib/password"
	"github.com/magabrotheeeer/timesheet-service/internal/models"
	services "github.com/magabrotheeeer/timesheet-service/internal/services/auth"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantUserID int
		wantErr    error
	}{
		{
			name:     "successful registration",
			username: "testuser",
			password: "Password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					// Хэш не совпадает с сырым паролем, но проверяется им.
					return user.Username == "testuser" &&
						user.PasswordHash != "Password123" &&
						password.CompareHash(user.PasswordHash, "Password123") == nil &&
						user.Role == "user"
				})).Return(7, nil).Once()
			},
			wantUserID: 7,
		},
		{
			name:     "duplicate username",
			username: "testuser",
			password: "Password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return(0, storage.ErrUserExists).Once()
			},
			wantErr: storage.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			svc := services.NewAuthService(repo)
			gotID, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUserID, gotID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("Password123")
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Username:     "testuser",
		PasswordHash: hash,
		Role:         "user",
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "Password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(storedUser, nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "WrongPassword1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(storedUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			// Неизвестное имя даёт ту же ошибку, что и неверный пароль.
			name:     "unknown username",
			username: "ghost",
			password: "Password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			svc := services.NewAuthService(repo)
			user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 7, user.ID)
				assert.Equal(t, "testuser", user.Username)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := password.GetHash("Current123")
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Username:     "testuser",
		PasswordHash: hash,
	}

	t.Run("wrong current password keeps stored hash", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUser", mock.Anything, 7).Return(storedUser, nil).Once()

		svc := services.NewAuthService(repo)
		err := svc.ChangePassword(context.Background(), 7, "Wrong1234", "NewPassword1")

		assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
		repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUser", mock.Anything, 99).Return(nil, storage.ErrUserNotFound).Once()

		svc := services.NewAuthService(repo)
		err := svc.ChangePassword(context.Background(), 99, "Current123", "NewPassword1")

		assert.True(t, errors.Is(err, storage.ErrUserNotFound))
	})

	t.Run("successful change stores hash of new password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUser", mock.Anything, 7).Return(storedUser, nil).Once()
		repo.On("UpdatePasswordHash", mock.Anything, 7, mock.MatchedBy(func(newHash string) bool {
			return password.CompareHash(newHash, "NewPassword1") == nil
		})).Return(nil).Once()

		svc := services.NewAuthService(repo)
		err := svc.ChangePassword(context.Background(), 7, "Current123", "NewPassword1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
