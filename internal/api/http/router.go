package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Use(cfg.RateLimiter)
	}
	authGroup.Post("/signup", cfg.Users.SignUp)
	authGroup.Post("/signin", cfg.Users.SignIn)

	// optional auth: guests submit anonymously, authenticated users get
	// attribution
	app.Post("/complaints", cfg.AuthMiddleware.HandleOptional, cfg.Complaints.Submit)
	app.Get("/complaints/mine", cfg.AuthMiddleware.Handle, cfg.Complaints.ListMine)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/complaints", cfg.Admin.ListComplaints)
	admin.Get("/complaints/:id", cfg.Admin.GetComplaint)
	admin.Patch("/complaints/:id/status", cfg.Admin.SetStatus)
	admin.Patch("/complaints/:id/priority", cfg.Admin.SetPriority)
}
