package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Requests *handlers.RequestsHandler
	SLA      *handlers.SLAHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	requests := app.Group("/requests")
	requests.Post("", cfg.Requests.Create)
	requests.Get("", cfg.Requests.List)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Post("/:id/assign", cfg.Requests.Assign)
	requests.Post("/:id/start", cfg.Requests.Start)
	requests.Post("/:id/complete", cfg.Requests.Complete)
	requests.Post("/:id/cancel", cfg.Requests.Cancel)
	requests.Get("/:id/sla/badge", cfg.SLA.Badge)

	slaGroup := app.Group("/sla")
	slaGroup.Get("/summary", cfg.SLA.Summary)
	slaGroup.Get("/violations", cfg.SLA.Violations)
	slaGroup.Post("/evaluate", cfg.SLA.Evaluate)
	slaGroup.Post("/sweep", cfg.SLA.Sweep)
}
