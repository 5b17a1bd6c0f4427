package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/ibplan-go-api/internal/config"
	"github.com/noah-isme/ibplan-go-api/internal/handler"
	"github.com/noah-isme/ibplan-go-api/internal/middleware"
	"github.com/noah-isme/ibplan-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	PaperHandler   *handler.PaperHandler
	ThemeHandler   *handler.ThemeHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Everything
// except health, metrics and login sits behind the JWT gate, matching
// the pages that show the login view when no identity is present.
// Document mutations additionally require the admin role.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.RegisterPublic(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.CatalogHandler != nil {
		deps.CatalogHandler.Register(api.Group("/catalog", jwtMiddleware))
	}

	if deps.PaperHandler != nil {
		papers := api.Group("/papers", jwtMiddleware)
		deps.PaperHandler.Register(papers)
		deps.PaperHandler.RegisterAdmin(papers.Group("", middleware.RequireRole("admin")))
	}

	if deps.ThemeHandler != nil {
		deps.ThemeHandler.Register(api.Group("/settings/theme", jwtMiddleware))
	}
}
