package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Username string `validate:"required,min=3,max=100,username"`
	Password string `validate:"required,min=8,max=100,strongpassword"`
}

type skuPayload struct {
	SKU string `validate:"required,sku"`
}

func TestUsernameRule(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "letters digits underscore", username: "user_123", ok: true},
		{name: "dash rejected", username: "user-123", ok: false},
		{name: "space rejected", username: "user 123", ok: false},
		{name: "cyrillic rejected", username: "пользователь", ok: false},
		{name: "too short", username: "ab", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(registerPayload{Username: tt.username, Password: "Password123"})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStrongPasswordRule(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{name: "upper lower digit", password: "Password123", ok: true},
		{name: "no uppercase", password: "password123", ok: false},
		{name: "no lowercase", password: "PASSWORD123", ok: false},
		{name: "no digit", password: "PasswordOnly", ok: false},
		{name: "too short", password: "Pw1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(registerPayload{Username: "validuser", Password: tt.password})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSKURule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(skuPayload{SKU: "ABC-123_X"}))
	assert.Error(t, v.Struct(skuPayload{SKU: "ABC 123"}))
	assert.Error(t, v.Struct(skuPayload{SKU: "ABC#123"}))
}
