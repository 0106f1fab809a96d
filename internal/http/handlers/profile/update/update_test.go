package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/models"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Мок сервиса учетных записей
type AccountServiceMock struct {
	mock.Mock
}

func (m *AccountServiceMock) UpdateProfile(ctx context.Context, userUID string, patch models.UpdateUserPatch) (*models.Profile, error) {
	args := m.Called(ctx, userUID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	accountMock := new(AccountServiceMock)
	handler := New(newNoopLogger(), accountMock)

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name           string
		userUID        any
		requestBody    interface{}
		mockProfile    *models.Profile
		mockErr        error
		useMock        bool
		wantStatusCode int
		wantErrors     string
	}{
		{
			name:    "successful partial update",
			userUID: "uid-1",
			requestBody: Request{
				Username: strPtr("newalice"),
			},
			mockProfile: &models.Profile{
				UID:      "uid-1",
				Username: "newalice",
				Email:    "alice@example.com",
			},
			useMock:        true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing user identification",
			userUID:        nil,
			requestBody:    Request{Username: strPtr("newalice")},
			wantStatusCode: http.StatusUnauthorized,
			wantErrors:     "user identification missing",
		},
		{
			name:           "invalid json body",
			userUID:        "uid-1",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantErrors:     "invalid request body",
		},
		{
			name:    "validation error - short username",
			userUID: "uid-1",
			requestBody: Request{
				Username: strPtr("ab"),
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrors:     "field Username is too short",
		},
		{
			name:    "malformed email",
			userUID: "uid-1",
			requestBody: Request{
				Email: strPtr("broken-email"),
			},
			mockErr:        services.ErrInvalidEmail,
			useMock:        true,
			wantStatusCode: http.StatusBadRequest,
			wantErrors:     "email is not valid",
		},
		{
			name:    "email taken",
			userUID: "uid-1",
			requestBody: Request{
				Email: strPtr("taken@example.com"),
			},
			mockErr:        services.ErrEmailTaken,
			useMock:        true,
			wantStatusCode: http.StatusConflict,
			wantErrors:     "user already exists",
		},
		{
			name:    "unknown user",
			userUID: "uid-1",
			requestBody: Request{
				Username: strPtr("ghostname"),
			},
			mockErr:        services.ErrUserNotFound,
			useMock:        true,
			wantStatusCode: http.StatusNotFound,
			wantErrors:     "no user exists with that id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountMock.ExpectedCalls = nil
			accountMock.Calls = nil

			if tt.useMock {
				accountMock.On("UpdateProfile", mock.Anything, "uid-1", mock.Anything).
					Return(tt.mockProfile, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPatch, "/update", bytes.NewReader(bodyBytes))
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
				assert.Equal(t, "Updated Profile", got["message"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "newalice", data["username"])
			}

			accountMock.AssertExpectations(t)
		})
	}
}
