// Package stats реализует HTTP-обработчики статистики каталога:
// сводку по товарам текущего пользователя и административную сводку
// по всему каталогу.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-catalog/internal/http/response"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики статистики.
type Service interface {
	Stats(ctx context.Context, ownerID int64) (*models.ProductStats, error)
	AdminStats(ctx context.Context) (*models.ProductStats, error)
}

// OverviewHandler возвращает статистику по товарам текущего пользователя.
type OverviewHandler struct {
	log     *slog.Logger
	service Service
}

// NewOverview создает обработчик персональной статистики.
func NewOverview(log *slog.Logger, service Service) *OverviewHandler {
	return &OverviewHandler{log: log, service: service}
}

func (h *OverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.stats.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated", http.StatusUnauthorized))
		return
	}

	stats, err := h.service.Stats(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to count product stats", sl.Err(err))
		status, body := response.DomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, stats)
}

// AdminHandler возвращает статистику по всему каталогу.
// Маршрут защищен middleware суперпользователя.
type AdminHandler struct {
	log     *slog.Logger
	service Service
}

// NewAdmin создает обработчик административной статистики.
func NewAdmin(log *slog.Logger, service Service) *AdminHandler {
	return &AdminHandler{log: log, service: service}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.stats.admin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		log.Error("failed to count catalog stats", sl.Err(err))
		status, body := response.DomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, stats)
}
