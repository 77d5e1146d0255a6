package models

// ProductFilter представляет параметры фильтрации и пагинации,
// которые передаются в слой доступа к данным при выборке товаров.
type ProductFilter struct {
	Skip       int      // Сколько записей пропустить, >= 0
	Limit      int      // Размер страницы, [1, 1000]
	Category   *string  // Точное совпадение категории (nil, если фильтра нет)
	Search     *string  // Подстрока по name/description/sku без учета регистра
	MinPrice   *float64 // Нижняя граница цены, включительно
	MaxPrice   *float64 // Верхняя граница цены, включительно
	ActiveOnly bool     // Только активные товары (по умолчанию true)
}

// ProductPage страница выборки товаров вместе с метаданными пагинации.
// Total — количество записей, подходящих под фильтры без учета skip/limit.
type ProductPage struct {
	Items []*Product `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}

// ProductStats агрегированная статистика по товарам.
// TotalValue = Σ(price * stock_quantity) по отфильтрованному набору.
type ProductStats struct {
	TotalProducts    int     `json:"total_products"`
	ActiveProducts   int     `json:"active_products"`
	InactiveProducts int     `json:"inactive_products"`
	TotalValue       float64 `json:"total_value"`
}
