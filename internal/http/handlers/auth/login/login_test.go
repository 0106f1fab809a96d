package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Мок сервиса учетных записей
type AccountServiceMock struct {
	mock.Mock
}

func (m *AccountServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	accountMock := new(AccountServiceMock)
	logger := newNoopLogger()

	handler := New(logger, accountMock)

	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockErr        error
		useMock        bool
		wantStatusCode int
		wantToken      string
		wantErrors     string
	}{
		{
			name: "valid login",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockToken:      "signed.jwt.token",
			useMock:        true,
			wantStatusCode: http.StatusOK,
			wantToken:      "signed.jwt.token",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantErrors:     "invalid request body",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Email: "user1@example.com",
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrors:     "field Password is a required field",
		},
		{
			name: "unknown email",
			requestBody: Request{
				Email:    "nobody@example.com",
				Password: "password123",
			},
			mockErr:        services.ErrUserNotFound,
			useMock:        true,
			wantStatusCode: http.StatusNotFound,
			wantErrors:     "no user exists with that email",
		},
		{
			name: "wrong password",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "wrongpassword",
			},
			mockErr:        services.ErrInvalidCredentials,
			useMock:        true,
			wantStatusCode: http.StatusUnauthorized,
			wantErrors:     "wrong password",
		},
		{
			name: "storage error",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockErr:        errors.New("connection refused"),
			useMock:        true,
			wantStatusCode: http.StatusInternalServerError,
			wantErrors:     "failed to login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountMock.ExpectedCalls = nil
			accountMock.Calls = nil

			if tt.useMock {
				accountMock.On("Login", mock.Anything,
					mock.Anything,
					mock.Anything,
				).Return(tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			meta, ok := got["response"].(map[string]any)
			assert.True(t, ok)
			assert.EqualValues(t, tt.wantStatusCode, meta["status"])

			if tt.wantErrors != "" {
				errStr, ok := got["errors"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantErrors, errStr)
				assert.Nil(t, got["token"])
			} else {
				assert.Equal(t, "Login was successful.", got["message"])
				assert.Equal(t, tt.wantToken, got["token"])
			}

			accountMock.AssertExpectations(t)
		})
	}
}
