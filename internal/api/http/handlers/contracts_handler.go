package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// ContractsHandler serves vendor contracts.
type ContractsHandler struct {
	service *backend.ContractService
}

// NewContractsHandler constructs handler.
func NewContractsHandler(contracts *backend.ContractService) *ContractsHandler {
	return &ContractsHandler{service: contracts}
}

func (h *ContractsHandler) ListContracts(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *ContractsHandler) GetContract(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Expiring GET /api/contracts/expiring?days=N, N defaulting to 30.
func (h *ContractsHandler) Expiring(c *fiber.Ctx) error {
	days := backend.DefaultExpiringDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("days inválido", map[string]any{"days": raw})
		}
		days = parsed
	}
	items, err := h.service.Expiring(c.UserContext(), days)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *ContractsHandler) CreateContract(c *fiber.Ctx) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req domain.Contract
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(item)
}
