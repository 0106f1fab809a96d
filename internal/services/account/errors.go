package services

import "errors"

// Ошибки уровня бизнес-логики. Обработчики отображают их в HTTP-статусы:
// валидация — 400, неверные учетные данные — 401, отсутствие записи — 404,
// дубликат уникального поля — 409.
var (
	// ErrMissingFields — не заполнено одно из обязательных полей.
	ErrMissingFields = errors.New("username, email and password are required")
	// ErrInvalidEmail — email не прошел синтаксическую проверку.
	ErrInvalidEmail = errors.New("email is not valid")
	// ErrEmailTaken — учетная запись с таким email уже существует.
	ErrEmailTaken = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("no user exists")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("wrong password")
	// ErrResetTokenInvalid — токен сброса не найден или истек.
	// Текст намеренно не уточняет причину.
	ErrResetTokenInvalid = errors.New("password reset token is invalid or has expired")
	// ErrPasswordMismatch — новый пароль и подтверждение не совпали.
	ErrPasswordMismatch = errors.New("password did not match")
)
