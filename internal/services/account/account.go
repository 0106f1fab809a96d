// Package services содержит логику бизнес-уровня для работы с учетными записями:
// регистрация, вход, сброс пароля по почте и CRUD профиля.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/account-service/internal/lib/emailcheck"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/lib/resettoken"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	"github.com/magabrotheeeer/account-service/internal/storage/repository"
)

// profileCacheTTL — время жизни закэшированного профиля.
const profileCacheTTL = 5 * time.Minute

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	SetResetToken(ctx context.Context, userUID, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, userUID string) error
}

// ResetMailer отправляет письмо со ссылкой сброса. Ошибка отправки
// прерывает операцию запроса сброса.
type ResetMailer interface {
	SendResetLink(email, host, token string) error
}

// Notifier публикует уведомление о смене пароля. Вызывается без ожидания
// результата: сбой публикации не влияет на основную операцию.
type Notifier interface {
	PublishPasswordChanged(info models.PasswordChangedInfo) error
}

// ProfileCache — кэш сериализованных профилей.
type ProfileCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AccountService отвечает за все операции над учетной записью.
// Единственный мутатор записей пользователя.
type AccountService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	mailer   ResetMailer
	notifier Notifier
	cache    ProfileCache
	log      *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
func NewAccountService(users UserRepository, jwtMaker jwt.Maker, mailer ResetMailer,
	notifier Notifier, cache ProfileCache, log *slog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		jwtMaker: jwtMaker,
		mailer:   mailer,
		notifier: notifier,
		cache:    cache,
		log:      log,
	}
}

func profileCacheKey(userUID string) string {
	return "profile:" + userUID
}

// Register создает нового пользователя. Username и email приводятся к нижнему
// регистру перед записью. Проверка на дубликат идет только по email;
// уникальность username дополнительно страхует ограничение в базе.
func (s *AccountService) Register(ctx context.Context, username, email, rawPassword string) (*models.Profile, error) {
	const op = "services.account.Register"

	if username == "" || email == "" || rawPassword == "" {
		return nil, ErrMissingFields
	}
	if !emailcheck.IsValid(email) {
		return nil, ErrInvalidEmail
	}

	username = strings.ToLower(username)
	email = strings.ToLower(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := created.ToProfile()
	return &profile, nil
}

// Login проверяет пароль пользователя и возвращает подписанный токен сессии.
func (s *AccountService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.account.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет токен сессии и возвращает UID пользователя.
func (s *AccountService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserUID, nil
}

// RequestReset выпускает токен сброса пароля, сохраняет его на записи
// пользователя и синхронно отправляет письмо со ссылкой вида
// http://<host>/reset/<token>. Сбой отправки прерывает операцию.
func (s *AccountService) RequestReset(ctx context.Context, email, requestHost string) error {
	const op = "services.account.RequestReset"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, expiresAt, err := resettoken.Issue()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetResetToken(ctx, user.UID, token, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendResetLink(user.Email, requestHost, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompleteReset завершает сброс пароля. Новый хэш записывается одним
// условным обновлением вместе с очисткой токена и срока действия, поэтому
// повторное применение того же токена завершается ErrResetTokenInvalid.
// Подтверждающее письмо ставится в очередь без ожидания результата.
func (s *AccountService) CompleteReset(ctx context.Context, token, newPassword, confirmPassword string) error {
	const op = "services.account.CompleteReset"

	now := time.Now().UTC()
	if _, err := s.users.GetUserByResetToken(ctx, token, now); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.ConsumeResetToken(ctx, token, hashed, now)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	go func(info models.PasswordChangedInfo) {
		if err := s.notifier.PublishPasswordChanged(info); err != nil {
			s.log.Error("failed to publish password changed notification", sl.Err(err))
		}
	}(models.PasswordChangedInfo{Username: user.Username, Email: user.Email})

	return nil
}

// GetProfile возвращает профиль без чувствительных полей, сперва из кэша.
func (s *AccountService) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "services.account.GetProfile"

	var cached models.Profile
	if hit, err := s.cache.Get(profileCacheKey(userUID), &cached); err != nil {
		s.log.Error("profile cache read failed", sl.Err(err))
	} else if hit {
		return &cached, nil
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := user.ToProfile()
	if err := s.cache.Set(profileCacheKey(userUID), profile, profileCacheTTL); err != nil {
		s.log.Error("profile cache write failed", sl.Err(err))
	}
	return &profile, nil
}

// ListProfiles возвращает страницу профилей. Верхняя граница limit
// не ограничивается.
func (s *AccountService) ListProfiles(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	const op = "services.account.ListProfiles"

	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profiles := make([]models.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.ToProfile())
	}
	return profiles, nil
}

// UpdateProfile меняет только переданные поля профиля.
// Пропущенные поля сохраняют прежние значения.
func (s *AccountService) UpdateProfile(ctx context.Context, userUID string, patch models.UpdateUserPatch) (*models.Profile, error) {
	const op = "services.account.UpdateProfile"

	if patch.Email != nil && !emailcheck.IsValid(*patch.Email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patch.Username != nil {
		user.Username = strings.ToLower(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(*patch.Email)
	}
	if patch.Password != nil {
		hashed, err := password.GetHash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hashed
	}

	updated, err := s.users.UpdateUser(ctx, *user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(profileCacheKey(userUID)); err != nil {
		s.log.Error("profile cache invalidation failed", sl.Err(err))
	}

	profile := updated.ToProfile()
	return &profile, nil
}

// DeleteProfile безвозвратно удаляет учетную запись.
func (s *AccountService) DeleteProfile(ctx context.Context, userUID string) error {
	const op = "services.account.DeleteProfile"

	if err := s.users.DeleteUser(ctx, userUID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(profileCacheKey(userUID)); err != nil {
		s.log.Error("profile cache invalidation failed", sl.Err(err))
	}
	return nil
}
