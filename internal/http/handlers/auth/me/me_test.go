package me_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/timesheet-service/internal/models"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestMeHandler(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	ck := cookies.New("session_token", time.Hour, false)

	token, err := store.Create(context.Background(), models.Session{UserID: 7, Username: "alice"})
	require.NoError(t, err)

	handler := me.New(newNoopLogger(), store, ck)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no cookie",
			cookie:     nil,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "unauthorized",
		},
		{
			name:       "unknown token",
			cookie:     &http.Cookie{Name: "session_token", Value: "bogus"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "unauthorized",
		},
		{
			name:       "live session",
			cookie:     &http.Cookie{Name: "session_token", Value: token},
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":7`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestMeHandler_ReturnsIdentity(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	ck := cookies.New("session_token", time.Hour, false)

	token, err := store.Create(context.Background(), models.Session{UserID: 42, Username: "bob"})
	require.NoError(t, err)

	handler := me.New(newNoopLogger(), store, ck)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":42`)
	assert.Contains(t, rr.Body.String(), `"username":"bob"`)
}
