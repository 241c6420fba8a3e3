package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/domain"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *backend.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *backend.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.List(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(tickets)
}

// MyTickets GET /api/tickets/my.
func (h *TicketsHandler) MyTickets(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.Mine(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(tickets)
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticket)
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticket)
}

// ChangeStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.StatusChange
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.ChangeStatus(c.UserContext(), user, id, req)
	if err != nil {
		return err
	}
	return c.JSON(ticket)
}
