package models

import "time"

// Product представляет товар каталога.
// SKU уникален, нормализуется к верхнему регистру и неизменяем после создания.
// Товар принадлежит ровно одному пользователю (создателю), владение не передается.
type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`                  // Название (1-200 символов)
	Description   *string    `json:"description,omitempty"` // Описание (опционально)
	Price         float64    `json:"price"`                 // Цена, строго больше нуля
	StockQuantity int        `json:"stock_quantity"`        // Остаток на складе, неотрицательный
	Category      *string    `json:"category,omitempty"`    // Категория (опционально)
	SKU           string     `json:"sku"`                   // Уникальный артикул, [A-Z0-9_-]+
	IsActive      bool       `json:"is_active"`             // Флаг активности, по умолчанию true
	OwnerID       int64      `json:"owner_id"`              // Владелец (создатель), обязателен
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// DummyCreateProduct используется для приёма данных нового товара из JSON-запроса.
// SKU опционален: при отсутствии генерируется автоматически.
type DummyCreateProduct struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   *string `json:"description,omitempty"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Category      *string `json:"category,omitempty" validate:"omitempty,max=100"`
	SKU           *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100,sku"`
}

// DummyUpdateProduct используется для частичного обновления товара.
// Изменяются только переданные поля. Поле SKU принимается, но молча
// отбрасывается: артикул после создания не меняется.
type DummyUpdateProduct struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	IsActive      *bool    `json:"is_active,omitempty"`
	SKU           *string  `json:"sku,omitempty"`
}
