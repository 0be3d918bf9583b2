package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/patient-booking/internal/api/http/handlers"
	"github.com/spec-kit/patient-booking/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	Appointments   *handlers.AppointmentsHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	limited := func(h fiber.Handler) []fiber.Handler {
		if cfg.RateLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{cfg.RateLimiter.Handle, h}
	}

	app.Get("/users", cfg.Users.List)
	app.Post("/users", limited(cfg.Users.Create)...)

	app.Post("/auth/login", limited(cfg.Auth.Login)...)

	app.Post("/appointments", cfg.Appointments.Create)
	app.Get("/appointments/catalog", cfg.Appointments.Catalog)
	app.Get("/appointments/prefill", cfg.AuthMiddleware.Handle, cfg.Appointments.Prefill)
}
