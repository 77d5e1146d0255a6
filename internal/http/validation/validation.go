// Package validation собирает валидатор запросов с дополнительными
// правилами каталога: формат имени пользователя, надежность пароля
// и допустимые символы артикула.
package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	skuRe      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// New возвращает валидатор с зарегистрированными правилами
// username, strongpassword и sku.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", validUsername)
	_ = v.RegisterValidation("strongpassword", strongPassword)
	_ = v.RegisterValidation("sku", validSKU)
	return v
}

func validUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

func validSKU(fl validator.FieldLevel) bool {
	return skuRe.MatchString(fl.Field().String())
}

// strongPassword требует хотя бы одну заглавную букву, одну строчную
// и одну цифру. Длина проверяется отдельными правилами min/max.
func strongPassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
