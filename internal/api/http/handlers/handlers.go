// Package handlers holds the fiber handlers of the development backend. They
// decode requests, call internal/backend and return its errors untouched for
// the error middleware to render.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/auth"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

func actor(c *fiber.Ctx) (repository.UserRecord, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return repository.UserRecord{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Identificador inválido", map[string]any{name: c.Params(name)})
	}
	return int64(id), nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Cuerpo de la solicitud inválido", nil)
	}
	return nil
}
