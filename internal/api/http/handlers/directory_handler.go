package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/domain"
)

// DirectoryHandler serves users and locations.
type DirectoryHandler struct {
	service *backend.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *backend.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: directory}
}

func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.Users(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.User(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *DirectoryHandler) UsersByRole(c *fiber.Ctx) error {
	role := domain.Role(strings.ToUpper(c.Params("role")))
	users, err := h.service.UsersByRole(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *DirectoryHandler) Circumscriptions(c *fiber.Ctx) error {
	items, err := h.service.Circumscriptions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *DirectoryHandler) Courts(c *fiber.Ctx) error {
	items, err := h.service.Courts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}
