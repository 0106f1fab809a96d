package remove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Мок сервиса учетных записей
type AccountServiceMock struct {
	mock.Mock
}

func (m *AccountServiceMock) DeleteProfile(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	accountMock := new(AccountServiceMock)
	handler := New(newNoopLogger(), accountMock)

	tests := []struct {
		name           string
		userUID        any
		mockErr        error
		useMock        bool
		wantStatusCode int
		wantMessage    string
		wantErrors     string
	}{
		{
			name:           "successful delete",
			userUID:        "uid-1",
			useMock:        true,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Deleted Profile",
		},
		{
			name:           "missing user identification",
			userUID:        nil,
			wantStatusCode: http.StatusUnauthorized,
			wantErrors:     "user identification missing",
		},
		{
			name:           "unknown user",
			userUID:        "uid-1",
			mockErr:        services.ErrUserNotFound,
			useMock:        true,
			wantStatusCode: http.StatusNotFound,
			wantErrors:     "no user exists with that id",
		},
		{
			name:           "storage error",
			userUID:        "uid-1",
			mockErr:        errors.New("connection refused"),
			useMock:        true,
			wantStatusCode: http.StatusInternalServerError,
			wantErrors:     "failed to delete profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountMock.ExpectedCalls = nil
			accountMock.Calls = nil

			if tt.useMock {
				accountMock.On("DeleteProfile", mock.Anything, "uid-1").
					Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodDelete, "/delete", nil)
			if tt.userUID != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantErrors != "" {
				assert.Equal(t, tt.wantErrors, got["errors"])
			} else {
				assert.Equal(t, tt.wantMessage, got["message"])
			}

			accountMock.AssertExpectations(t)
		})
	}
}
