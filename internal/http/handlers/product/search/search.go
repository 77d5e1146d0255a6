// Package search реализует HTTP-обработчик полнотекстового поиска товаров.
//
// Запрос разбивается на токены; товар попадает в выдачу, если хотя бы
// один токен встречается в name, description, category или sku.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-catalog/internal/http/response"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// Handler обрабатывает запросы полнотекстового поиска.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска.
type Service interface {
	Search(ctx context.Context, query string, limit int) ([]*models.Product, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Полнотекстовый поиск товаров
// @Description Ищет активные товары по токенам запроса в name, description, category и sku.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param q query string true "Строка запроса"
// @Param limit query int false "Максимум результатов" default(50)
// @Success 200 {object} map[string]any "Результаты поиска"
// @Router /products/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 1000 {
			limit = parsed
		}
	}

	items, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		status, body := response.DomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, map[string]any{
		"query":   query,
		"count":   len(items),
		"results": items,
	})
}
