package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

// RequirePermission checks the authenticated user's role against the static
// permission table.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		u, ok := UserFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if err := auth.MustEnforce(authorize.Role(u.Role), resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) || errors.Is(err, authorize.ErrInvalidArgs) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}

// RequireRole admits only the listed roles. Used for the management surfaces
// the permission table does not model, like doctor administration.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		u, ok := UserFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		for _, r := range roles {
			if u.Role == r {
				return c.Next()
			}
		}
		return fiber.ErrForbidden
	}
}
