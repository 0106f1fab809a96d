// Package remove реализует HTTP-обработчик удаления учетной записи
// текущего пользователя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	services "github.com/magabrotheeeer/account-service/internal/services/account"
)

// Service описывает интерфейс бизнес-логики удаления учетной записи.
type Service interface {
	DeleteProfile(ctx context.Context, userUID string) error
}

// Handler обрабатывает удаление учетной записи.
type Handler struct {
	log     *slog.Logger
	account Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, account Service) *Handler {
	return &Handler{log: log, account: account}
}

// ServeHTTP godoc
// @Summary Удаление учетной записи
// @Description Безвозвратно удаляет учетную запись текущего пользователя.
// @Tags Profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Учетная запись удалена"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Router /delete [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "user identification missing"))
		return
	}

	if err := h.account.DeleteProfile(r.Context(), userUID); err != nil {
		log.Error("failed to delete profile", sl.Err(err))
		if errors.Is(err, services.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "no user exists with that id"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to delete profile"))
		return
	}

	log.Info("profile deleted", slog.String("user_uid", userUID))
	render.JSON(w, r, response.OK(http.StatusOK, "Deleted Profile", nil))
}
