// Package forgot реализует HTTP-обработчик запроса сброса пароля.
// Ссылка сброса строится от хоста запроса и отправляется письмом.
package forgot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Request — входные данные запроса сброса.
type Request struct {
	Email string `json:"email" validate:"required"`
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	RequestReset(ctx context.Context, email, requestHost string) error
}

// Handler обрабатывает запросы сброса пароля.
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
// @Summary Запрос сброса пароля
// @Description Выпускает токен сброса и отправляет письмо со ссылкой.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email учетной записи"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /forgot [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.account.RequestReset(r.Context(), req.Email, r.Host); err != nil {
		log.Error("reset request failed", sl.Err(err))
		if errors.Is(err, services.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "no user exists with that email"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to request password reset"))
		return
	}

	log.Info("reset email dispatched")
	render.JSON(w, r, response.OK(http.StatusOK, "Check your email to reset password.", nil))
}
