package login

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	args := m.Called(ctx, identifier, password)
	if res := args.Get(1); res != nil {
		return args.String(0), res.(*models.User), args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func TestLoginHandler_Form(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{ID: 1, Username: "someuser", IsActive: true}

	tests := []struct {
		name           string
		form           url.Values
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			form: url.Values{"username": {"someuser"}, "password": {"Correct123"}},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "someuser", "Correct123").Return("signed-token", user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"signed-token"`,
		},
		{
			name: "вход по email",
			form: url.Values{"username": {"user@example.com"}, "password": {"Correct123"}},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "Correct123").Return("signed-token", user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token_type":"bearer"`,
		},
		{
			name: "неверные учетные данные",
			form: url.Values{"username": {"someuser"}, "password": {"Wrong123"}},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "someuser", "Wrong123").Return("", nil, apperr.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"incorrect username/email or password"`,
		},
		{
			name: "деактивированная учетная запись",
			form: url.Values{"username": {"sleepy"}, "password": {"Correct123"}},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "sleepy", "Correct123").Return("", nil, apperr.ErrInactiveAccount)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"inactive user"`,
		},
		{
			name:           "пустые поля",
			form:           url.Values{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"message":"validation error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_JSON(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{ID: 1, Username: "someuser", IsActive: true}

	mockService := new(MockService)
	mockService.On("Login", mock.Anything, "someuser", "Correct123").Return("signed-token", user, nil)

	handler := NewJSON(logger, mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login-alt",
		strings.NewReader(`{"username":"someuser","password":"Correct123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"signed-token"`)
	mockService.AssertExpectations(t)
}
