package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/api/http/handlers"
	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Inventory      *handlers.InventoryHandler
	Contracts      *handlers.ContractsHandler
	Directory      *handlers.DirectoryHandler
	Audit          *handlers.AuditHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	const (
		admin    = domain.RoleAdmin
		operator = domain.RoleOperator
		tech     = domain.RoleTechnician
	)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)

	tickets := protected.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/my", cfg.Tickets.MyTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/", auth.RequireRole(admin, operator), cfg.Tickets.CreateTicket)
	tickets.Patch("/:id/status", auth.RequireRole(admin, tech), cfg.Tickets.ChangeStatus)

	inventory := protected.Group("/inventory")
	inventory.Get("/hardware", cfg.Inventory.ListHardware)
	inventory.Get("/hardware/:id", cfg.Inventory.GetHardware)
	inventory.Post("/hardware", auth.RequireRole(admin, tech), cfg.Inventory.CreateHardware)
	inventory.Get("/software", cfg.Inventory.ListSoftware)
	inventory.Get("/software/:id", cfg.Inventory.GetSoftware)
	inventory.Post("/software", auth.RequireRole(admin, tech), cfg.Inventory.CreateSoftware)

	contracts := protected.Group("/contracts")
	contracts.Get("/", auth.RequireRole(admin, operator), cfg.Contracts.ListContracts)
	contracts.Get("/expiring", auth.RequireRole(admin, operator), cfg.Contracts.Expiring)
	contracts.Get("/:id", auth.RequireRole(admin, operator), cfg.Contracts.GetContract)
	contracts.Post("/", auth.RequireRole(admin), cfg.Contracts.CreateContract)

	protected.Get("/dashboard/stats", auth.RequireRole(admin, operator), cfg.Dashboard.Stats)

	protected.Get("/locations/circunscripciones", cfg.Directory.Circumscriptions)
	protected.Get("/locations/juzgados", cfg.Directory.Courts)

	users := protected.Group("/users", auth.RequireRole(admin))
	users.Get("/", cfg.Directory.ListUsers)
	users.Get("/role/:role", cfg.Directory.UsersByRole)
	users.Get("/:id", cfg.Directory.GetUser)

	audit := protected.Group("/audit", auth.RequireRole(admin))
	audit.Get("/", cfg.Audit.Recent)
	audit.Get("/entity/:name/:id", cfg.Audit.ForEntity)
}
