package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/domain"
)

// InventoryHandler serves hardware and software.
type InventoryHandler struct {
	service *backend.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *backend.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: inventory}
}

func (h *InventoryHandler) ListHardware(c *fiber.Ctx) error {
	items, err := h.service.Hardware(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetHardware(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.HardwareByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *InventoryHandler) CreateHardware(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req domain.Hardware
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.CreateHardware(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(item)
}

func (h *InventoryHandler) ListSoftware(c *fiber.Ctx) error {
	items, err := h.service.Software(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetSoftware(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.SoftwareByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *InventoryHandler) CreateSoftware(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req domain.Software
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.CreateSoftware(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(item)
}
