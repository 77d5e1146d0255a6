// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Hasher хранит стоимость bcrypt из конфигурации и создает хеши паролей.
// Compare сравнивает bcrypt-хеш с введённым паролем; некорректный хеш
// трактуется как несовпадение, а не как ошибка программы.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher создает bcrypt-хеши с заданной стоимостью.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher с указанной стоимостью bcrypt.
// Значение вне диапазона bcrypt заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt-хэш.
//
// Хэш соленый: два вызова для одного пароля дают разные значения.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Compare сравнивает bcrypt-хэш с введённым паролем.
//
// Возвращает true только при точном совпадении; искажённый или пустой
// хеш даёт false без паники.
func Compare(originalHash, externalPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)) == nil
}
