// Package get реализует HTTP-обработчик чтения профиля по идентификатору.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Handler обрабатывает чтение профиля.
type Handler struct {
	log     *slog.Logger
	account Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, account Service) *Handler {
	return &Handler{log: log, account: account}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль без чувствительных полей.
// @Tags Profile
// @Produce  json
// @Param userId path string true "Идентификатор пользователя"
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Router /profiles/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "userId")
	if _, err := uuid.Parse(userID); err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "field userId can contain only uuid"))
		return
	}

	profile, err := h.account.GetProfile(r.Context(), userID)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		if errors.Is(err, services.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "no user exists with that id"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to get profile"))
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "Profile", profile))
}
