package services

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

type ProductsMock struct{ mock.Mock }

func (m *ProductsMock) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductsMock) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductsMock) SKUExists(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *ProductsMock) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *ProductsMock) ListProductsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*models.Product, int, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *ProductsMock) SearchProducts(ctx context.Context, tokens []string, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, tokens, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductsMock) UpdateProduct(ctx context.Context, id int64, patch models.DummyUpdateProduct) (*models.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductsMock) DeleteProduct(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *ProductsMock) ProductStats(ctx context.Context, ownerID *int64) (*models.ProductStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductStats), args.Error(1)
}

func (m *ProductsMock) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// CacheMock не хранит данные: Get всегда промахивается, Set и Invalidate
// только считают вызовы.
type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestService(products *ProductsMock, cache *CacheMock) *ProductService {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return NewProductService(products, cache, log)
}

func strptr(s string) *string { return &s }

func TestProductService_Create(t *testing.T) {
	owner := &models.User{ID: 3, Username: "seller", IsActive: true}

	tests := []struct {
		name       string
		req        models.DummyCreateProduct
		setupMocks func(m *ProductsMock)
		wantSKU    string
		wantErr    error
	}{
		{
			name: "explicit sku is normalized",
			req:  models.DummyCreateProduct{Name: "Gadget", Price: 9.99, SKU: strptr("abc-123")},
			setupMocks: func(m *ProductsMock) {
				m.On("SKUExists", mock.Anything, "ABC-123").Return(false, nil).Once()
				m.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
					return p.SKU == "ABC-123" && p.OwnerID == 3 && p.IsActive
				})).Return(&models.Product{ID: 1, SKU: "ABC-123", OwnerID: 3}, nil).Once()
			},
			wantSKU: "ABC-123",
		},
		{
			name: "explicit sku already taken",
			req:  models.DummyCreateProduct{Name: "Gadget", Price: 9.99, SKU: strptr("taken-1")},
			setupMocks: func(m *ProductsMock) {
				m.On("SKUExists", mock.Anything, "TAKEN-1").Return(true, nil).Once()
			},
			wantErr: apperr.ErrDuplicateSKU,
		},
		{
			name: "sku generated from name",
			req:  models.DummyCreateProduct{Name: "Gaming Laptop Pro", Price: 1500},
			setupMocks: func(m *ProductsMock) {
				m.On("SKUExists", mock.Anything, "GAMINGLA-0001").Return(false, nil).Once()
				m.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
					return p.SKU == "GAMINGLA-0001"
				})).Return(&models.Product{ID: 2, SKU: "GAMINGLA-0001", OwnerID: 3}, nil).Once()
			},
			wantSKU: "GAMINGLA-0001",
		},
		{
			name: "generated sku skips taken counters",
			req:  models.DummyCreateProduct{Name: "Gaming Laptop Pro", Price: 1500},
			setupMocks: func(m *ProductsMock) {
				m.On("SKUExists", mock.Anything, "GAMINGLA-0001").Return(true, nil).Once()
				m.On("SKUExists", mock.Anything, "GAMINGLA-0002").Return(false, nil).Once()
				m.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
					return p.SKU == "GAMINGLA-0002"
				})).Return(&models.Product{ID: 3, SKU: "GAMINGLA-0002", OwnerID: 3}, nil).Once()
			},
			wantSKU: "GAMINGLA-0002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(ProductsMock)
			tt.setupMocks(products)
			svc := newTestService(products, new(CacheMock))

			got, err := svc.Create(context.Background(), owner, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSKU, got.SKU)
			}
			products.AssertExpectations(t)
		})
	}
}

func TestProductService_Get(t *testing.T) {
	product := &models.Product{ID: 10, Name: "Gadget", SKU: "GADGET-0001"}

	t.Run("cache miss loads from storage and fills cache", func(t *testing.T) {
		products := new(ProductsMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "product:10", mock.Anything).Return(false, nil).Once()
		products.On("GetProduct", mock.Anything, int64(10)).Return(product, nil).Once()
		cache.On("Set", mock.Anything, "product:10", product, productCacheTTL).Return(nil).Once()

		got, err := newTestService(products, cache).Get(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, product, got)
		products.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		products := new(ProductsMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "product:10", mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*models.Product) = *product
			}).Return(true, nil).Once()

		got, err := newTestService(products, cache).Get(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, product.SKU, got.SKU)
		products.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		products := new(ProductsMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "product:99", mock.Anything).Return(false, nil).Once()
		products.On("GetProduct", mock.Anything, int64(99)).Return(nil, apperr.ErrNotFound).Once()

		_, err := newTestService(products, cache).Get(context.Background(), 99)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestProductService_List_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		skip      int
		limit     int
		wantPage  int
		wantPages int
	}{
		{name: "first page", total: 25, skip: 0, limit: 10, wantPage: 1, wantPages: 3},
		{name: "last partial page", total: 25, skip: 20, limit: 10, wantPage: 3, wantPages: 3},
		{name: "empty result", total: 0, skip: 0, limit: 10, wantPage: 1, wantPages: 0},
		{name: "exact fit", total: 30, skip: 10, limit: 10, wantPage: 2, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(ProductsMock)
			filter := models.ProductFilter{Skip: tt.skip, Limit: tt.limit, ActiveOnly: true}
			products.On("ListProducts", mock.Anything, filter).
				Return([]*models.Product{}, tt.total, nil).Once()

			page, err := newTestService(products, new(CacheMock)).List(context.Background(), filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.limit, page.Size)
			assert.NotNil(t, page.Items)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	owner := &models.User{ID: 3, Username: "seller"}
	stranger := &models.User{ID: 4, Username: "nosy"}
	admin := &models.User{ID: 1, Username: "admin", IsSuperuser: true}
	existing := &models.Product{ID: 10, Name: "Gadget", SKU: "GADGET-0001", OwnerID: 3}

	tests := []struct {
		name       string
		actor      *models.User
		patch      models.DummyUpdateProduct
		setupMocks func(m *ProductsMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:  "owner updates price",
			actor: owner,
			patch: models.DummyUpdateProduct{Price: float64ptr(19.99)},
			setupMocks: func(m *ProductsMock, c *CacheMock) {
				m.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()
				m.On("UpdateProduct", mock.Anything, int64(10), mock.Anything).Return(existing, nil).Once()
				c.On("Invalidate", mock.Anything, "product:10").Return(nil).Once()
			},
		},
		{
			name:  "superuser updates someone else's product",
			actor: admin,
			patch: models.DummyUpdateProduct{IsActive: boolptr(false)},
			setupMocks: func(m *ProductsMock, c *CacheMock) {
				m.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()
				m.On("UpdateProduct", mock.Anything, int64(10), mock.Anything).Return(existing, nil).Once()
				c.On("Invalidate", mock.Anything, "product:10").Return(nil).Once()
			},
		},
		{
			name:  "stranger is forbidden",
			actor: stranger,
			patch: models.DummyUpdateProduct{Price: float64ptr(19.99)},
			setupMocks: func(m *ProductsMock, c *CacheMock) {
				m.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name:  "missing product reported before authorization",
			actor: stranger,
			patch: models.DummyUpdateProduct{Price: float64ptr(19.99)},
			setupMocks: func(m *ProductsMock, c *CacheMock) {
				m.On("GetProduct", mock.Anything, int64(10)).Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:  "sku in patch is silently dropped",
			actor: owner,
			patch: models.DummyUpdateProduct{SKU: strptr("HACKED-1"), Price: float64ptr(5)},
			setupMocks: func(m *ProductsMock, c *CacheMock) {
				m.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()
				m.On("UpdateProduct", mock.Anything, int64(10), mock.MatchedBy(func(p models.DummyUpdateProduct) bool {
					return p.SKU == nil && p.Price != nil
				})).Return(existing, nil).Once()
				c.On("Invalidate", mock.Anything, "product:10").Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(ProductsMock)
			cache := new(CacheMock)
			tt.setupMocks(products, cache)
			svc := newTestService(products, cache)

			_, err := svc.Update(context.Background(), tt.actor, 10, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			products.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestProductService_Delete(t *testing.T) {
	owner := &models.User{ID: 3, Username: "seller"}
	stranger := &models.User{ID: 4, Username: "nosy"}
	existing := &models.Product{ID: 10, OwnerID: 3}

	t.Run("owner deletes", func(t *testing.T) {
		products := new(ProductsMock)
		cache := new(CacheMock)
		products.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()
		products.On("DeleteProduct", mock.Anything, int64(10)).Return(1, nil).Once()
		cache.On("Invalidate", mock.Anything, "product:10").Return(nil).Once()

		err := newTestService(products, cache).Delete(context.Background(), owner, 10)
		require.NoError(t, err)
		products.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		products := new(ProductsMock)
		products.On("GetProduct", mock.Anything, int64(10)).Return(existing, nil).Once()

		err := newTestService(products, new(CacheMock)).Delete(context.Background(), stranger, 10)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestProductService_Stats(t *testing.T) {
	products := new(ProductsMock)
	ownStats := &models.ProductStats{TotalProducts: 2, ActiveProducts: 1, InactiveProducts: 1, TotalValue: 100}
	allStats := &models.ProductStats{TotalProducts: 5, ActiveProducts: 4, InactiveProducts: 1, TotalValue: 999}

	products.On("ProductStats", mock.Anything, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 3
	})).Return(ownStats, nil).Once()
	products.On("ProductStats", mock.Anything, (*int64)(nil)).Return(allStats, nil).Once()

	svc := newTestService(products, new(CacheMock))

	got, err := svc.Stats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, ownStats, got)

	got, err = svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, allStats, got)
	products.AssertExpectations(t)
}

func TestProductService_SKUFormat(t *testing.T) {
	// Формат сгенерированного артикула: до 8 символов префикса и либо
	// счетчик из четырех цифр, либо 12 hex-символов.
	re := regexp.MustCompile(`^[A-Z0-9]{1,8}-([0-9]{4}|[0-9A-F]{12})$`)
	assert.True(t, re.MatchString("GAMINGLA-0001"))
	assert.True(t, re.MatchString("PROD-0A1B2C3D4E5F"))
	assert.False(t, re.MatchString("gaminglа-0001"))
}

func float64ptr(f float64) *float64 { return &f }
func boolptr(b bool) *bool          { return &b }
