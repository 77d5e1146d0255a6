// Package models содержит доменные структуры пользователей и товаров,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется в ответ.
type User struct {
	ID           int64      `json:"id"`                  // Числовой идентификатор, назначается при создании
	Email        string     `json:"email"`               // Электронная почта (уникальная, регистр сохраняется)
	Username     string     `json:"username"`            // Имя пользователя (уникальное)
	PasswordHash string     `json:"-"`                   // Хэш пароля пользователя
	FullName     *string    `json:"full_name,omitempty"` // Полное имя (опционально)
	IsActive     bool       `json:"is_active"`           // Флаг активности, по умолчанию true
	IsSuperuser  bool       `json:"is_superuser"`        // Флаг суперпользователя, по умолчанию false
	CreatedAt    time.Time  `json:"created_at"`          // Дата создания, назначается сервером
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// DummyRegisterUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyRegisterUser struct {
	Email    string  `json:"email" validate:"required,email"`                       // Электронная почта
	Username string  `json:"username" validate:"required,min=3,max=100,username"`   // Имя пользователя: буквы, цифры, подчеркивание
	Password string  `json:"password" validate:"required,min=8,max=100,strongpassword"` // Пароль: верхний и нижний регистр, цифра
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`      // Полное имя (опционально)
}

// DummyUpdateUser используется для частичного обновления пользователя.
// Указатели различают "поле не передано" и "передано пустое значение":
// изменяются только переданные поля.
type DummyUpdateUser struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100,username"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
// Username может содержать имя пользователя или email.
type DummyLogin struct {
	Username string `json:"username" validate:"required"` // Имя пользователя или email
	Password string `json:"password" validate:"required"` // Пароль
}
