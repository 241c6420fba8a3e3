package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/backend"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// AuthHandler exposes the login endpoints.
type AuthHandler struct {
	auth *backend.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *backend.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(h.auth.Me(principal))
}
