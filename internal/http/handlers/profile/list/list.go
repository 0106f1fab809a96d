// Package list реализует HTTP-обработчик постраничного списка профилей.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
)

const (
	defaultOffset = 0
	defaultLimit  = 10
)

// Service описывает интерфейс бизнес-логики списка профилей.
type Service interface {
	ListProfiles(ctx context.Context, limit, offset int) ([]models.Profile, error)
}

// Handler обрабатывает запрос списка профилей.
type Handler struct {
	log     *slog.Logger
	account Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, account Service) *Handler {
	return &Handler{log: log, account: account}
}

// ServeHTTP godoc
// @Summary Список профилей
// @Description Возвращает страницу профилей. Параметр page задает смещение, limit — размер страницы.
// @Tags Profile
// @Produce  json
// @Param page query int false "Смещение, по умолчанию 0"
// @Param limit query int false "Размер страницы, по умолчанию 10"
// @Success 200 {object} response.Response "Профили"
// @Router /profiles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	offset := defaultOffset
	limit := defaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		// верхняя граница намеренно не ограничивается
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	profiles, err := h.account.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list profiles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list profiles"))
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "Profiles", profiles))
}
