// Package resettoken реализует выпуск и проверку одноразовых токенов сброса пароля.
//
// Issue генерирует криптографически случайный токен и срок его действия.
// IsValid проверяет, что срок действия токена еще не истек.
package resettoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// tokenBytes — количество случайных байт в токене (512 бит энтропии).
	tokenBytes = 64
	// TTL — фиксированное окно действия токена сброса.
	TTL = time.Hour
)

// Issue возвращает hex-строку из 64 случайных байт и момент истечения (сейчас + 1 час).
func Issue() (string, time.Time, error) {
	const op = "resettoken.Issue"
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), time.Now().UTC().Add(TTL), nil
}

// IsValid возвращает true, если токен непустой и момент now раньше expiresAt.
func IsValid(token string, expiresAt, now time.Time) bool {
	if token == "" {
		return false
	}
	return now.Before(expiresAt)
}
