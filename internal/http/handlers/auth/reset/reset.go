// Package reset реализует HTTP-обработчик завершения сброса пароля.
// Токен берется из пути, новый пароль — из тела запроса.
package reset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Request — входные данные завершения сброса.
type Request struct {
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Service описывает интерфейс бизнес-логики завершения сброса пароля.
type Service interface {
	CompleteReset(ctx context.Context, token, newPassword, confirmPassword string) error
}

// Handler обрабатывает завершение сброса пароля.
type Handler struct {
	log      *slog.Logger
	account  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, account Service) *Handler {
	return &Handler{
		log:      log,
		account:  account,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Завершение сброса пароля
// @Description Меняет пароль по одноразовому токену сброса. Токен гасится атомарно.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param token path string true "Токен сброса"
// @Param request body Request true "Новый пароль и подтверждение"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.Response "Пароли не совпали"
// @Failure 404 {object} response.Response "Токен не найден или истек"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /reset/{token} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, "token")
	if token == "" {
		log.Error("reset token missing in path")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(http.StatusNotFound, services.ErrResetTokenInvalid.Error()))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(http.StatusBadRequest, err.(validator.ValidationErrors)))
		return
	}

	if err := h.account.CompleteReset(r.Context(), token, req.NewPassword, req.ConfirmPassword); err != nil {
		log.Error("reset completion failed", sl.Err(err))
		switch {
		case errors.Is(err, services.ErrResetTokenInvalid):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrPasswordMismatch):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(http.StatusBadRequest, err.Error()))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to reset password"))
		}
		return
	}

	log.Info("password reset completed")
	render.JSON(w, r, response.OK(http.StatusOK, "Success! Your password has been changed.", nil))
}
