package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/account-service/internal/models"
)

// wrapUserError переводит ошибки драйвера в ошибки уровня хранилища.
func wrapUserError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var resetToken sql.NullString
	var resetExpiresAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&resetToken, &resetExpiresAt, &u.CreatedAt); err != nil {
		return nil, err
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetExpiresAt.Valid {
		t := resetExpiresAt.Time
		u.ResetExpiresAt = &t
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает запись с uid и датой создания.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid, created_at;`
	created := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&created.UID, &created.CreatedAt); err != nil {
		return nil, wrapUserError(op, err)
	}
	return &created, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, reset_token, reset_expires_at, created_at
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapUserError(op, err)
	}
	return u, nil
}

// GetUserByUID возвращает пользователя по его UID.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, reset_token, reset_expires_at, created_at
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, wrapUserError(op, err)
	}
	return u, nil
}

// ListUsers возвращает страницу пользователей, отсортированных по дате создания.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, reset_token, reset_expires_at, created_at
			  FROM users
			  ORDER BY created_at, uid
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetResetToken сохраняет токен сброса и срок его действия на записи пользователя.
func (s *Storage) SetResetToken(ctx context.Context, userUID, token string, expiresAt time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_token = $1, reset_expires_at = $2
			  WHERE uid = $3`
	res, err := s.DB.ExecContext(ctx, query, token, expiresAt, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// GetUserByResetToken возвращает пользователя с совпадающим и не истекшим токеном сброса.
func (s *Storage) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	const op = "storage.GetUserByResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, reset_token, reset_expires_at, created_at
			  FROM users
			  WHERE reset_token = $1 AND reset_expires_at > $2`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token, now))
	if err != nil {
		return nil, wrapUserError(op, err)
	}
	return u, nil
}

// ConsumeResetToken одним условным UPDATE записывает новый хэш пароля и
// очищает токен сброса вместе со сроком действия. Токен одноразовый:
// повторное применение не находит строку и возвращает ErrUserNotFound.
func (s *Storage) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	const op = "storage.ConsumeResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, reset_token = NULL, reset_expires_at = NULL
			  WHERE reset_token = $2 AND reset_expires_at > $3
			  RETURNING uid, username, email, password_hash, reset_token, reset_expires_at, created_at`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, passwordHash, token, now))
	if err != nil {
		return nil, wrapUserError(op, err)
	}
	return u, nil
}

// UpdateUser перезаписывает изменяемые поля профиля и возвращает свежую запись.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, email = $2, password_hash = $3
			  WHERE uid = $4
			  RETURNING uid, username, email, password_hash, reset_token, reset_expires_at, created_at`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.UID))
	if err != nil {
		return nil, wrapUserError(op, err)
	}
	return u, nil
}

// DeleteUser безвозвратно удаляет запись пользователя.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
