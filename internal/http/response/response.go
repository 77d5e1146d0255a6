// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Пакет упрощает возврат
// ошибок, сообщений валидации и служебных сообщений в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
)

// ErrorResponse описывает стандартную структуру JSON-ответа с ошибкой.
// Поле Error всегда true, Message — текст для клиента, StatusCode
// дублирует HTTP-статус в теле, Details — список нарушений валидации.
type ErrorResponse struct {
	Error      bool     `json:"error"`
	Message    string   `json:"message"`
	StatusCode int      `json:"status_code"`
	Details    []string `json:"details,omitempty"`
}

// Message — структура служебного сообщения, например подтверждения удаления.
type Message struct {
	Message string `json:"message"`
}

// Error возвращает ErrorResponse с переданным сообщением и статусом.
func Error(msg string, statusCode int) ErrorResponse {
	return ErrorResponse{
		Error:      true,
		Message:    msg,
		StatusCode: statusCode,
	}
}

// DomainError преобразует ошибку сервисного слоя в HTTP-статус и тело ответа.
// Текст доменной ошибки показывается клиенту, остальные ошибки скрываются
// за непрозрачным internal server error.
func DomainError(err error) (int, ErrorResponse) {
	status := apperr.Status(err)
	return status, Error(apperr.Message(err), status)
}

// ValidationError формирует ErrorResponse со статусом 422 на основе ошибок
// валидации. Каждое нарушение превращается в человеко-читаемую строку
// в списке Details.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	details := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			details = append(details, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			details = append(details, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "username":
			details = append(details, fmt.Sprintf("field %s can contain only letters, numbers and underscores", err.Field()))
		case "strongpassword":
			details = append(details, fmt.Sprintf("field %s must contain an uppercase letter, a lowercase letter and a digit", err.Field()))
		case "sku":
			details = append(details, fmt.Sprintf("field %s can contain only letters, numbers, hyphens and underscores", err.Field()))
		case "min":
			details = append(details, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			details = append(details, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt":
			details = append(details, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "gte":
			details = append(details, fmt.Sprintf("field %s must be non-negative", err.Field()))
		default:
			details = append(details, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{
		Error:      true,
		Message:    "validation error",
		StatusCode: 422,
		Details:    details,
	}
}

// Deleted возвращает подтверждение удаления сущности.
func Deleted(entity string) Message {
	return Message{Message: fmt.Sprintf("%s deleted successfully", entity)}
}
