package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// productColumns список колонок товара в порядке сканирования
const productColumns = `id, name, description, price, stock_quantity, category, sku, is_active, owner_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var description, category sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.StockQuantity,
		&category, &p.SKU, &p.IsActive, &p.OwnerID, &p.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if category.Valid {
		p.Category = &category.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return p, nil
}

// CreateProduct вставляет новый товар и возвращает созданную запись.
// Конкурентная вставка с занятым sku возвращает ErrDuplicateSKU.
func (s *Storage) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO products (name, description, price, stock_quantity, category, sku, is_active, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + productColumns
	row := s.DB.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.Category, product.SKU, product.IsActive, product.OwnerID)
	created, err := scanProduct(row)
	if err != nil {
		return nil, mapConstraintErr(op, err)
	}
	return created, nil
}

// GetProduct возвращает товар по его ID.
func (s *Storage) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(op, err)
	}
	return p, nil
}

// SKUExists проверяет занятость артикула. Используется генератором SKU
// как предикат: итоговую гарантию дает уникальный индекс products_sku_key.
func (s *Storage) SKUExists(ctx context.Context, sku string) (bool, error) {
	const op = "storage.SKUExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, sku).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// buildFilterConditions собирает WHERE-условия и аргументы из фильтра.
func buildFilterConditions(filter models.ProductFilter) ([]string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)
	addCondition := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}
	if filter.Category != nil {
		addCondition("category = $%d", *filter.Category)
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d)", n, n, n))
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}
	return conditions, args
}

// ListProducts возвращает страницу товаров по фильтру и общее количество
// записей, подходящих под фильтр без учета limit/offset.
func (s *Storage) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	const op = "storage.ListProducts"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	conditions, args := buildFilterConditions(filter)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	args = append(args, filter.Limit, filter.Skip)
	pageQuery := fmt.Sprintf(`SELECT `+productColumns+` FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := s.DB.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListProductsByOwner возвращает товары владельца с пагинацией и общее их количество.
func (s *Storage) ListProductsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*models.Product, int, error) {
	const op = "storage.ListProductsByOwner"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + productColumns + `
			  FROM products
			  WHERE owner_id = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// SearchProducts выполняет полнотекстовый поиск: товар подходит, если хотя бы
// один токен встречается в name, description, category или sku. Ищутся
// только активные товары.
func (s *Storage) SearchProducts(ctx context.Context, tokens []string, limit int) ([]*models.Product, error) {
	const op = "storage.SearchProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if len(tokens) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens)+1)
	for _, token := range tokens {
		args = append(args, "%"+token+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d OR sku ILIKE $%d", n, n, n, n))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT `+productColumns+`
			  FROM products
			  WHERE (%s) AND is_active = true
			  ORDER BY id
			  LIMIT $%d`, strings.Join(conditions, " OR "), len(args))
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProduct применяет частичное обновление товара. Поле SKU здесь
// отсутствует намеренно: артикул после создания не меняется.
func (s *Storage) UpdateProduct(ctx context.Context, id int64, patch models.DummyUpdateProduct) (*models.Product, error) {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	addSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.StockQuantity != nil {
		addSet("stock_quantity", *patch.StockQuantity)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.IsActive != nil {
		addSet("is_active", *patch.IsActive)
	}
	if len(set) == 0 {
		return s.GetProduct(ctx, id)
	}
	set = append(set, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING `+productColumns,
		strings.Join(set, ", "), len(args))
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapNoRows(op, err)
		}
		return nil, mapConstraintErr(op, err)
	}
	return p, nil
}

// DeleteProduct удаляет товар по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM products WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ProductStats возвращает агрегированную статистику по товарам,
// при заданном ownerID — только по товарам владельца.
func (s *Storage) ProductStats(ctx context.Context, ownerID *int64) (*models.ProductStats, error) {
	const op = "storage.ProductStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
			      COUNT(*) FILTER (WHERE is_active),
			      COALESCE(SUM(price * stock_quantity), 0)
			  FROM products
			  WHERE ($1::bigint IS NULL OR owner_id = $1)`
	stats := &models.ProductStats{}
	if err := s.DB.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.TotalProducts, &stats.ActiveProducts, &stats.TotalValue); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.InactiveProducts = stats.TotalProducts - stats.ActiveProducts
	return stats, nil
}

// ListCategories возвращает отсортированный список различных непустых категорий.
func (s *Storage) ListCategories(ctx context.Context) ([]string, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT category FROM products WHERE category IS NOT NULL ORDER BY category`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
