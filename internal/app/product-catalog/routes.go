// Package productcatalog предоставляет маршруты для основного приложения.
package productcatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/product-catalog/internal/config"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/health"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/categories"
	productcreate "github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/myproducts"
	productread "github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/search"
	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/stats"
	productupdate "github.com/magabrotheeeer/product-catalog/internal/http/handlers/product/update"
	userlist "github.com/magabrotheeeer/product-catalog/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/product-catalog/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/product-catalog/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/product-catalog/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/product-catalog/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/product-catalog/internal/services/auth"
	productservice "github.com/magabrotheeeer/product-catalog/internal/services/product"
	userservice "github.com/magabrotheeeer/product-catalog/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	productService *productservice.ProductService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
		middlewarectx.CORSMiddleware(cfg.CORSOrigins),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/login-alt", login.NewJSON(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger).ServeHTTP)

			r.Post("/products", productcreate.New(logger, productService).ServeHTTP)
			r.Get("/products", productlist.New(logger, productService).ServeHTTP)
			r.Get("/products/my-products", myproducts.New(logger, productService).ServeHTTP)
			r.Get("/products/search", search.New(logger, productService).ServeHTTP)
			r.Get("/products/statistics/overview", stats.NewOverview(logger, productService).ServeHTTP)
			r.Get("/products/categories/list", categories.New(logger, productService).ServeHTTP)
			r.Get("/products/{id}", productread.New(logger, productService).ServeHTTP)
			r.Put("/products/{id}", productupdate.New(logger, productService).ServeHTTP)
			r.Delete("/products/{id}", productremove.New(logger, productService).ServeHTTP)

			// Администрирование: только суперпользователь
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SuperuserMiddleware(logger))
				r.Get("/products/statistics/admin", stats.NewAdmin(logger, productService).ServeHTTP)
				r.Get("/users", userlist.New(logger, userService).ServeHTTP)
				r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
				r.Put("/users/{id}", userupdate.New(logger, userService).ServeHTTP)
				r.Delete("/users/{id}", userremove.New(logger, userService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
