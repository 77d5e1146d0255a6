// Package create реализует HTTP-обработчик создания товара.
//
// Декодирует JSON нового товара, валидирует поля и делегирует создание
// сервису каталога. Артикул при отсутствии генерируется из названия.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-catalog/internal/http/response"
	"github.com/magabrotheeeer/product-catalog/internal/http/validation"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// Handler обрабатывает запросы на создание товара.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания товара.
type Service interface {
	Create(ctx context.Context, owner *models.User, req models.DummyCreateProduct) (*models.Product, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать товар
// @Description Создает товар от имени текущего пользователя. SKU опционален, при отсутствии генерируется из названия.
// @Tags Products
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCreateProduct true "Данные нового товара"
// @Success 201 {object} models.Product
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или занятый SKU"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated", http.StatusUnauthorized))
		return
	}

	var req models.DummyCreateProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body", http.StatusBadRequest))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	product, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		status, body := response.DomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("product created", slog.Int64("id", product.ID), slog.String("sku", product.SKU))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, product)
}
