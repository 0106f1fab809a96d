// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, поля сброса пароля
// и дату создания. Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// ResetToken и ResetExpiresAt либо оба присутствуют (идет сброс пароля),
// либо оба отсутствуют. Иное состояние записи некорректно.
type User struct {
	UID            string     // Уникальный идентификатор пользователя
	Username       string     // Имя пользователя (уникальное, в нижнем регистре)
	Email          string     // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash   string     // Хэш пароля пользователя, наружу не отдается
	ResetToken     *string    // Токен сброса пароля, пока сброс не завершен
	ResetExpiresAt *time.Time // Момент истечения токена сброса
	CreatedAt      time.Time  // Момент создания записи, неизменяемый
}

// Profile — представление пользователя без чувствительных полей.
// Только его можно сериализовать наружу.
type Profile struct {
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfile отбрасывает хэш пароля и поля сброса.
func (u *User) ToProfile() Profile {
	return Profile{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserPatch описывает частичное обновление профиля.
// Nil-поле означает "оставить прежнее значение".
type UpdateUserPatch struct {
	Username *string
	Email    *string
	Password *string
}

// PasswordChangedInfo — сообщение для очереди подтверждений смены пароля.
type PasswordChangedInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
