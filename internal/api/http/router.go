package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Notes   *handlers.NotesHandler
}

// RegisterRoutes wires HTTP routes. The static ticket collection paths
// (live, past, stats) are registered before /:id so they are not captured
// by the id parameter.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	tickets := api.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/live", cfg.Tickets.ListLiveTickets)
	tickets.Get("/past", cfg.Tickets.ListPastTickets)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/resolve", cfg.Tickets.ResolveTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)

	tickets.Post("/:id/notes", cfg.Notes.CreateNote)
	tickets.Get("/:id/notes", cfg.Notes.ListNotes)
	tickets.Get("/:id/timeline", cfg.Notes.Timeline)
}
