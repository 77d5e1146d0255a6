package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/product-catalog/internal/models"
)

const minTokenLen = 2

// Tokenize разбивает поисковый запрос на токены: нижний регистр,
// разделение по пробельным символам, токены короче двух символов
// отбрасываются.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Search выполняет полнотекстовый поиск по активным товарам.
// Товар попадает в выдачу, если хотя бы один токен встречается в name,
// description, category или sku. Пустой запрос или запрос без пригодных
// токенов дает пустой результат, а не ошибку.
func (s *ProductService) Search(ctx context.Context, query string, limit int) ([]*models.Product, error) {
	const op = "services.product.Search"

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []*models.Product{}, nil
	}

	items, err := s.products.SearchProducts(ctx, tokens, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []*models.Product{}
	}
	return items, nil
}
