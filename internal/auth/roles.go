package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// RequireRole ensures the principal has one of the allowed roles. With no
// roles any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.User.Role]; !exists {
			return apperrors.NewForbidden("Acceso denegado")
		}
		return c.Next()
	}
}
