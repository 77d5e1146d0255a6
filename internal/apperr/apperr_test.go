package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "duplicate email", err: ErrDuplicateEmail, want: http.StatusBadRequest},
		{name: "duplicate username", err: ErrDuplicateUsername, want: http.StatusBadRequest},
		{name: "duplicate sku", err: ErrDuplicateSKU, want: http.StatusBadRequest},
		{name: "invalid operation", err: ErrInvalidOperation, want: http.StatusBadRequest},
		{name: "inactive account", err: ErrInactiveAccount, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped domain error", err: fmt.Errorf("service.Create: %w", ErrDuplicateSKU), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(ErrNotFound))
	assert.True(t, IsDomain(fmt.Errorf("wrapped: %w", ErrForbidden)))
	assert.False(t, IsDomain(errors.New("database is on fire")))
}
