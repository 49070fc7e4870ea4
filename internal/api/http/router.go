package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/http/handlers"
	"github.com/spec-kit/menu-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-code", cfg.Auth.VerifyCode)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/verify-email", cfg.Auth.VerifyEmail)
	authGroup.Post("/resend-email", cfg.Auth.ResendEmail)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/session", cfg.Auth.GetSession)

	users := authGroup.Group("", cfg.AuthMiddleware.Handle)
	users.Get("/", cfg.Users.List)
	users.Get("/profile/me", cfg.Users.Profile)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id/update", cfg.Users.Update)
	users.Put("/:id/password/update", cfg.Users.UpdatePassword)
	users.Delete("/:id", cfg.Users.Delete)

	categories := v1.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:slug", cfg.Categories.Get)
	categories.Post("/", cfg.AuthMiddleware.Handle, cfg.Categories.Create)
	categories.Put("/:slug", cfg.AuthMiddleware.Handle, cfg.Categories.Update)
	categories.Delete("/:slug", cfg.AuthMiddleware.Handle, cfg.Categories.Delete)

	products := v1.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:slug", cfg.Products.Get)
	products.Post("/", cfg.AuthMiddleware.Handle, cfg.Products.Create)
	products.Put("/:slug", cfg.AuthMiddleware.Handle, cfg.Products.Update)
	products.Patch("/:slug/is-active", cfg.AuthMiddleware.Handle, cfg.Products.ToggleActive)
	products.Delete("/:slug", cfg.AuthMiddleware.Handle, cfg.Products.Delete)
}
