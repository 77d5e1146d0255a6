// Package apperr определяет доменные ошибки сервиса и их соответствие
// HTTP-статусам. Ошибки объявлены как sentinel-значения и проверяются
// через errors.Is на границе HTTP.
package apperr

import (
	"errors"
	"net/http"
)

// Доменные ошибки. Сервисный слой возвращает их (возможно, обёрнутыми
// через fmt.Errorf с %w), HTTP-слой преобразует в код ответа.
var (
	// ErrDuplicateEmail email уже занят другим пользователем
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUsername username уже занят другим пользователем
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateSKU SKU уже существует
	ErrDuplicateSKU = errors.New("sku already exists")
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("not found")
	// ErrForbidden недостаточно прав для операции
	ErrForbidden = errors.New("not enough permissions")
	// ErrInvalidOperation операция запрещена бизнес-правилом (например, удаление себя)
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrUnauthorized неверные учетные данные
	ErrUnauthorized = errors.New("incorrect username/email or password")
	// ErrInactiveAccount учетная запись деактивирована
	ErrInactiveAccount = errors.New("inactive user")
)

// Status возвращает HTTP-статус для доменной ошибки.
// Неизвестная ошибка считается внутренней: 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrDuplicateSKU),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrInactiveAccount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст доменной ошибки без служебных префиксов
// оборачивания. Для недоменных ошибок возвращается непрозрачный текст,
// детали остаются только в серверном логе.
func Message(err error) string {
	for _, sentinel := range []error{
		ErrDuplicateEmail, ErrDuplicateUsername, ErrDuplicateSKU,
		ErrNotFound, ErrForbidden, ErrInvalidOperation,
		ErrUnauthorized, ErrInactiveAccount,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal server error"
}

// IsDomain сообщает, относится ли ошибка к доменной таксономии.
// Для доменных ошибок текст безопасно показывать клиенту,
// остальные возвращаются как непрозрачный internal server error.
func IsDomain(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
