// Package list реализует HTTP-обработчик списка товаров с фильтрами
// и пагинацией.
package list

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

// Handler обрабатывает запросы на получение страницы товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка товаров.
type Service interface {
	List(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает страницу товаров с метаданными пагинации: total, page, size, pages.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Сколько записей пропустить" default(0)
// @Param limit query int false "Размер страницы" default(100)
// @Param category query string false "Точное совпадение категории"
// @Param search query string false "Подстрока по name/description/sku"
// @Param min_price query number false "Нижняя граница цены"
// @Param max_price query number false "Верхняя граница цены"
// @Param active_only query bool false "Только активные товары" default(true)
// @Success 200 {object} models.ProductPage
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := parseFilter(r)

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		status, body := response.DomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, page)
}

// parseFilter читает параметры фильтрации из query string.
// Непригодные значения молча заменяются значениями по умолчанию.
func parseFilter(r *http.Request) models.ProductFilter {
	q := r.URL.Query()

	filter := models.ProductFilter{
		Skip:       0,
		Limit:      100,
		ActiveOnly: true,
	}

	if v := q.Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			filter.Skip = parsed
		}
	}
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 1000 {
			filter.Limit = parsed
		}
	}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("min_price"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &parsed
		}
	}
	if v := q.Get("max_price"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &parsed
		}
	}
	if v := q.Get("active_only"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			filter.ActiveOnly = parsed
		}
	}
	return filter
}
