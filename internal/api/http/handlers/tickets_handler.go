package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/dto"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/service"
	"github.com/quickdesk/quickdesk/pkg/util"
)

// TicketsHandler manages the ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// ListLiveTickets GET /api/tickets/live.
func (h *TicketsHandler) ListLiveTickets(c *fiber.Ctx) error {
	views, err := h.service.ListLiveTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(viewResponses(views))
}

// ListPastTickets GET /api/tickets/past.
func (h *TicketsHandler) ListPastTickets(c *fiber.Ctx) error {
	views, err := h.service.ListPastTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(viewResponses(views))
}

// Stats GET /api/tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		TotalTickets:         stats.TotalTickets,
		LiveTickets:          stats.LiveTickets,
		ResolvedTickets:      stats.ResolvedTickets,
		AvgResponseTimeMs:    stats.AvgResponseTimeMs,
		CustomerSatisfaction: stats.CustomerSatisfaction,
	})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid ticket data", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ticketResponse(ticket))
}

// ResolveTicket PATCH /api/tickets/:id/resolve.
func (h *TicketsHandler) ResolveTicket(c *fiber.Ctx) error {
	ticket, err := h.service.ResolveTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// UpdateTicket PATCH /api/tickets/:id. Only the status field is honored;
// a client-supplied resolvedAt is discarded.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid update data", nil)
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), service.TicketUpdateInput{
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// DeleteTicket DELETE /api/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Name:        ticket.Name,
		Email:       ticket.Email,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		ResolvedAt:  ticket.ResolvedAt,
	}
}

func viewResponses(views []service.TicketView) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(views))
	for i := range views {
		resp := ticketResponse(&views[i].Ticket)
		resp.TimeOpen = views[i].TimeOpen
		resp.ResolutionTime = views[i].ResolutionTime
		items = append(items, resp)
	}
	return items
}
