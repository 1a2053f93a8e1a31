package changepassword_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/timesheet-service/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/timesheet-service/internal/services/auth"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestChangePasswordHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     any
		setupMocks func(s *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid json",
			body:       `{"currentPassword"`,
			userID:     42,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "missing current password",
			body:       `{"newPassword": "NewPassword1"}`,
			userID:     42,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "field CurrentPassword is a required field",
		},
		{
			name:       "weak new password",
			body:       `{"currentPassword": "Current123", "newPassword": "alllowercase1"}`,
			userID:     42,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "field NewPassword must contain at least one lowercase letter, one uppercase letter and one digit",
		},
		{
			name:       "no user in context",
			body:       `{"currentPassword": "Current123", "newPassword": "NewPassword1"}`,
			userID:     nil,
			setupMocks: func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name:   "wrong current password",
			body:   `{"currentPassword": "Wrong1234", "newPassword": "NewPassword1"}`,
			userID: 42,
			setupMocks: func(s *ServiceMock) {
				s.On("ChangePassword", mock.Anything, 42, "Wrong1234", "NewPassword1").
					Return(authservice.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "current password is incorrect",
		},
		{
			name:   "user not found",
			body:   `{"currentPassword": "Current123", "newPassword": "NewPassword1"}`,
			userID: 42,
			setupMocks: func(s *ServiceMock) {
				s.On("ChangePassword", mock.Anything, 42, "Current123", "NewPassword1").
					Return(storage.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantError:  "user not found",
		},
		{
			name:   "successful change",
			body:   `{"currentPassword": "Current123", "newPassword": "NewPassword1"}`,
			userID: 42,
			setupMocks: func(s *ServiceMock) {
				s.On("ChangePassword", mock.Anything, 42, "Current123", "NewPassword1").
					Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)

			handler := changepassword.New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password",
				bytes.NewReader([]byte(tt.body)))
			if tt.userID != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, tt.userID)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Contains(t, rr.Body.String(), tt.wantError)
			}
			service.AssertExpectations(t)
		})
	}
}
