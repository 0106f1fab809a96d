// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Формат конверта:
// {response: {status}, message, data?, token?, errors?}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Meta несет HTTP-статус внутри конверта ответа.
type Meta struct {
	Status int `json:"status"`
}

// Response описывает стандартную структуру JSON‑ответа сервера.
// Message — человеко‑читаемое сообщение, Data — полезная нагрузка,
// Token — токен сессии при входе, Errors — текст ошибки при неуспехе.
type Response struct {
	Response Meta   `json:"response"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
	Token    string `json:"token,omitempty"`
	Errors   string `json:"errors,omitempty"`
}

// errorMessage — единое сообщение для всех ошибочных ответов,
// подробности лежат в поле Errors.
const errorMessage = "Error."

// OK возвращает успешный Response с сообщением и данными.
func OK(status int, message string, data any) Response {
	return Response{
		Response: Meta{Status: status},
		Message:  message,
		Data:     data,
	}
}

// OKWithToken возвращает успешный Response с токеном сессии.
func OKWithToken(status int, message, token string) Response {
	return Response{
		Response: Meta{Status: status},
		Message:  message,
		Token:    token,
	}
}

// Error возвращает Response с ошибкой и переданным текстом.
func Error(status int, errs string) Response {
	return Response{
		Response: Meta{Status: status},
		Message:  errorMessage,
		Errors:   errs,
	}
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(status int, errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(status, strings.Join(errsMsgs, ", "))
}
