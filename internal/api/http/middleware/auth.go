package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/service/session"
)

// LocalsUser holds the authenticated model.User for downstream handlers.
const LocalsUser = "auth_user"

// AuthRequired validates a Bearer token against the session store. The
// clinic runs a single authenticated session; the token is the id of the
// currently logged-in user.
func AuthRequired(sessions session.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		cur, ok := sessions.CurrentUser()
		if !ok || cur.ID != strings.TrimSpace(parts[1]) {
			return fiber.ErrUnauthorized
		}

		c.Locals(LocalsUser, cur)
		return c.Next()
	}
}

// UserFromFiber retrieves the authenticated user set by AuthRequired.
func UserFromFiber(c fiber.Ctx) (model.User, bool) {
	u, ok := c.Locals(LocalsUser).(model.User)
	return u, ok
}
