package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/backend"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	service *backend.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audit *backend.AuditService) *AuditHandler {
	return &AuditHandler{service: audit}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	entries, err := h.service.Recent(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// ForEntity GET /api/audit/entity/:name/:id.
func (h *AuditHandler) ForEntity(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.service.ForEntity(c.UserContext(), c.Params("name"), id)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
