// Package services содержит логику бизнес-уровня для работы с каталогом товаров.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/lib/authz"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sku"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// ProductRepository описывает контракт для работы с товарами в базе данных.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	ListProductsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, tokens []string, limit int) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.DummyUpdateProduct) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) (int, error)
	ProductStats(ctx context.Context, ownerID *int64) (*models.ProductStats, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Cacher описывает контракт кеша для горячих записей каталога.
type Cacher interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

const productCacheTTL = 5 * time.Minute

// ProductService реализует операции каталога: создание с генерацией SKU,
// выборки с фильтрами и пагинацией, частичные обновления и статистику.
type ProductService struct {
	products ProductRepository
	cache    Cacher
	log      *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(products ProductRepository, cache Cacher, log *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    cache,
		log:      log,
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// Create сохраняет новый товар от имени владельца.
//
// Если SKU не передан, он генерируется из названия; переданный SKU
// нормализуется к верхнему регистру и проверяется на уникальность.
// Гонку двух одинаковых SKU разрешает unique-индекс базы данных.
func (s *ProductService) Create(ctx context.Context, owner *models.User, req models.DummyCreateProduct) (*models.Product, error) {
	const op = "services.product.Create"

	var productSKU string
	if req.SKU != nil && *req.SKU != "" {
		productSKU = sku.Normalize(*req.SKU)
		exists, err := s.products.SKUExists(ctx, productSKU)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateSKU)
		}
	} else {
		generated, err := sku.Generate(ctx, req.Name, s.products.SKUExists)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		productSKU = generated
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		SKU:           productSKU,
		IsActive:      true,
		OwnerID:       owner.ID,
	}
	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created product",
		slog.Int64("id", created.ID),
		slog.String("sku", created.SKU),
		slog.Int64("owner_id", created.OwnerID))
	return created, nil
}

// Get возвращает товар по идентификатору, сначала пробуя кеш.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	const op = "services.product.Get"

	var cached models.Product
	found, err := s.cache.Get(ctx, productCacheKey(id), &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.Int64("id", id), slog.Any("error", err))
	}
	if found {
		return &cached, nil
	}

	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, productCacheKey(id), product, productCacheTTL); err != nil {
		s.log.Warn("cache store failed", slog.Int64("id", id), slog.Any("error", err))
	}
	return product, nil
}

// List возвращает страницу товаров по фильтрам вместе с метаданными пагинации.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {
	const op = "services.product.List"

	items, total, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buildPage(items, total, filter.Skip, filter.Limit), nil
}

// ListMy возвращает страницу товаров текущего пользователя.
func (s *ProductService) ListMy(ctx context.Context, ownerID int64, skip, limit int) (*models.ProductPage, error) {
	const op = "services.product.ListMy"

	items, total, err := s.products.ListProductsByOwner(ctx, ownerID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buildPage(items, total, skip, limit), nil
}

// buildPage считает номера страниц: page = skip/limit + 1,
// pages = ceil(total/limit). При total = 0 pages = 0, но page = 1.
func buildPage(items []*models.Product, total, skip, limit int) *models.ProductPage {
	page := skip/limit + 1
	pages := (total + limit - 1) / limit
	if items == nil {
		items = []*models.Product{}
	}
	return &models.ProductPage{
		Items: items,
		Total: total,
		Page:  page,
		Size:  limit,
		Pages: pages,
	}
}

// Update частично обновляет товар. Непереданные поля не меняются,
// поле SKU молча отбрасывается. Изменять товар может владелец или
// суперпользователь; отсутствие товара проверяется раньше прав.
func (s *ProductService) Update(ctx context.Context, actingUser *models.User, id int64, patch models.DummyUpdateProduct) (*models.Product, error) {
	const op = "services.product.Update"

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !authz.CanModifyProduct(actingUser, existing) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
	}

	patch.SKU = nil
	updated, err := s.products.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("cache invalidation failed", slog.Int64("id", id), slog.Any("error", err))
	}

	s.log.Info("updated product", slog.Int64("id", id), slog.Int64("user_id", actingUser.ID))
	return updated, nil
}

// Delete удаляет товар. Удалять может владелец или суперпользователь;
// отсутствие товара проверяется раньше прав.
func (s *ProductService) Delete(ctx context.Context, actingUser *models.User, id int64) error {
	const op = "services.product.Delete"

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !authz.CanModifyProduct(actingUser, existing) {
		return fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
	}

	if _, err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("cache invalidation failed", slog.Int64("id", id), slog.Any("error", err))
	}

	s.log.Info("deleted product", slog.Int64("id", id), slog.Int64("user_id", actingUser.ID))
	return nil
}

// Stats возвращает статистику по товарам пользователя.
func (s *ProductService) Stats(ctx context.Context, ownerID int64) (*models.ProductStats, error) {
	const op = "services.product.Stats"

	stats, err := s.products.ProductStats(ctx, &ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// AdminStats возвращает статистику по всему каталогу.
func (s *ProductService) AdminStats(ctx context.Context) (*models.ProductStats, error) {
	const op = "services.product.AdminStats"

	stats, err := s.products.ProductStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// Categories возвращает отсортированный список уникальных категорий.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	const op = "services.product.Categories"

	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
