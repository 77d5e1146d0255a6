// Package middlewarectx содержит HTTP middleware: проверку JWT токенов,
// требование прав суперпользователя, лимит запросов, метрики и CORS.
//
// JWTMiddleware проверяет наличие и валидность JWT в заголовке Authorization,
// загружает пользователя из хранилища по subject токена и кладет его в
// контекст запроса для дальнейшего использования в обработчиках.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-catalog/internal/http/response"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentUser — ключ для аутентифицированного пользователя в контексте.
const CurrentUser Key = "current_user"

// Service описывает интерфейс сервиса валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext извлекает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	return user, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT
// в заголовке Authorization.
//
// Если токен валиден и учетная запись существует, пользователь добавляется
// в контекст запроса, иначе возвращается 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header", http.StatusUnauthorized))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token", http.StatusUnauthorized))
				return
			}
			if !user.IsActive {
				log.Error("inactive user", slog.String("username", user.Username))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("inactive user", http.StatusBadRequest))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SuperuserMiddleware пропускает дальше только суперпользователей.
// Должен стоять после JWTMiddleware.
func SuperuserMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SuperuserMiddleware"

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing from context", slog.String("op", op))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated", http.StatusUnauthorized))
				return
			}
			if !user.IsSuperuser {
				log.Error("superuser access denied",
					slog.String("op", op),
					slog.String("username", user.Username))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("not enough permissions", http.StatusForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
