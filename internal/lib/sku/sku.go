// Package sku реализует генерацию уникальных артикулов товара.
//
// Артикул строится из названия товара: сначала детерминированные варианты
// с числовым суффиксом, затем случайные. Проверка занятости выполняется
// через callback, но гарантию уникальности дает только уникальный индекс
// в хранилище: генератор — механизм живости, а не корректности.
package sku

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// defaultBase используется, когда из названия не осталось ни одного символа
	defaultBase = "PROD"
	// maxBaseLen длина префикса артикула из очищенного названия
	maxBaseLen = 8
	// maxCounter верхняя граница детерминированной фазы
	maxCounter = 9999
	// randTokenLen длина случайного суффикса: 12 hex-символов, 48 бит.
	// Исходные 8 символов (32 бита) расширены, чтобы вероятность коллизии
	// при конкурентной записи оставалась пренебрежимой.
	randTokenLen = 12
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// ExistsFunc проверяет, занят ли артикул в хранилище.
type ExistsFunc func(ctx context.Context, sku string) (bool, error)

// Normalize приводит артикул к каноническому виду: верхний регистр.
func Normalize(sku string) string {
	return strings.ToUpper(sku)
}

// Clean строит префикс артикула из названия товара: убирает все символы,
// кроме букв и цифр, переводит в верхний регистр и обрезает до 8 символов.
// Пустой результат заменяется на PROD.
func Clean(baseName string) string {
	clean := nonAlphanumeric.ReplaceAllString(baseName, "")
	clean = strings.ToUpper(clean)
	if len(clean) > maxBaseLen {
		clean = clean[:maxBaseLen]
	}
	if clean == "" {
		clean = defaultBase
	}
	return clean
}

// Generate возвращает артикул, который exists на момент проверки считает
// свободным. При заданном названии сначала перебираются варианты
// {CLEAN}-0001..{CLEAN}-9999, после исчерпания (или без названия)
// генерируются случайные суффиксы до первого свободного.
func Generate(ctx context.Context, baseName string, exists ExistsFunc) (string, error) {
	const op = "sku.Generate"

	clean := defaultBase
	if baseName != "" {
		clean = Clean(baseName)

		for counter := 1; counter <= maxCounter; counter++ {
			candidate := fmt.Sprintf("%s-%04d", clean, counter)
			taken, err := exists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("%s: %w", op, err)
			}
			if !taken {
				return candidate, nil
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		default:
		}

		candidate := fmt.Sprintf("%s-%s", clean, randomToken())
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// randomToken возвращает случайный hex-суффикс фиксированной длины.
func randomToken() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:randTokenLen])
}
