package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/account-service/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	verify := NewTestVerification(storage)

	created, err := storage.CreateUser(context.Background(), models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.False(t, created.CreatedAt.IsZero())
	verify.VerifyUserExists(t, created.UID)

	// дубликат email дает ErrAlreadyExists
	_, err = storage.CreateUser(context.Background(), models.User{
		Username:     "alice2",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
	})
	require.ErrorIs(t, err, ErrAlreadyExists)

	// дубликат username тоже
	_, err = storage.CreateUser(context.Background(), models.User{
		Username:     "alice",
		Email:        "alice2@example.com",
		PasswordHash: "hashedpassword",
	})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash)

	user, err := storage.GetUserByEmail(context.Background(), data.Email)
	require.NoError(t, err)
	assert.Equal(t, data.UID, user.UID)
	assert.Equal(t, data.Username, user.Username)
	assert.Nil(t, user.ResetToken)
	assert.Nil(t, user.ResetExpiresAt)

	_, err = storage.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_GetUserByUID(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash)

	user, err := storage.GetUserByUID(context.Background(), data.UID)
	require.NoError(t, err)
	assert.Equal(t, data.Email, user.Email)

	_, err = storage.GetUserByUID(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 5 {
		_, err := storage.CreateUser(ctx, models.User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "hashedpassword",
		})
		require.NoError(t, err)
	}

	page, err := storage.ListUsers(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)

	rest, err := storage.ListUsers(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	// страницы не пересекаются: порядок стабилен
	seen := map[string]bool{}
	for _, u := range append(page, rest...) {
		assert.False(t, seen[u.UID])
		seen[u.UID] = true
	}

	empty, err := storage.ListUsers(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStorage_ResetTokenLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	ctx := context.Background()
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash)

	token := "a1b2c3"
	expiresAt := time.Now().Add(time.Hour).UTC()
	require.NoError(t, storage.SetResetToken(ctx, data.UID, token, expiresAt))

	// токен находит владельца пока не истек
	user, err := storage.GetUserByResetToken(ctx, token, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, data.UID, user.UID)

	// истекший токен не находится
	_, err = storage.GetUserByResetToken(ctx, token, expiresAt.Add(time.Minute))
	require.ErrorIs(t, err, ErrUserNotFound)

	// погашение меняет хэш и очищает токен
	consumed, err := storage.ConsumeResetToken(ctx, token, "newhash", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "newhash", consumed.PasswordHash)
	assert.Nil(t, consumed.ResetToken)
	assert.Nil(t, consumed.ResetExpiresAt)
	verify.VerifyResetTokenCleared(t, data.UID)

	// повторное погашение того же токена не находит строку
	_, err = storage.ConsumeResetToken(ctx, token, "anotherhash", time.Now().UTC())
	require.ErrorIs(t, err, ErrUserNotFound)

	// хэш от второй попытки не применился
	user, err = storage.GetUserByUID(ctx, data.UID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", user.PasswordHash)
}

func TestStorage_SetResetToken_UnknownUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.SetResetToken(context.Background(), uuid.New().String(),
		"sometoken", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash)

	updated, err := storage.UpdateUser(ctx, models.User{
		UID:          data.UID,
		Username:     "renamed",
		Email:        "renamed@example.com",
		PasswordHash: data.PasswordHash,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "renamed@example.com", updated.Email)

	// обновление несуществующего пользователя
	_, err = storage.UpdateUser(ctx, models.User{
		UID:          uuid.New().String(),
		Username:     "ghost",
		Email:        "ghost@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	// смена email на занятый дает ErrAlreadyExists
	other := TestUserData{
		UID:          uuid.New().String(),
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "hashedpassword",
	}
	factory.CreateUser(t, other.UID, other.Username, other.Email, other.PasswordHash)

	_, err = storage.UpdateUser(ctx, models.User{
		UID:          other.UID,
		Username:     other.Username,
		Email:        "renamed@example.com",
		PasswordHash: other.PasswordHash,
	})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestStorage_DeleteUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	ctx := context.Background()
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash)

	require.NoError(t, storage.DeleteUser(ctx, data.UID))
	verify.VerifyUserDeleted(t, data.UID)

	err := storage.DeleteUser(ctx, data.UID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
