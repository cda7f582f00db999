package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

func (r *Router) registerUserRoutes(
	api fiber.Router,
	h *handler.UserHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	users := api.Group("/users", authRequired)

	users.Get("/", h.List)
	users.Post("/", requirePerm(authorize.ResourceUser, authorize.ActionAdd), h.Create)
	users.Patch("/:id", requirePerm(authorize.ResourceUser, authorize.ActionEdit), h.Update)
	users.Delete("/:id", requirePerm(authorize.ResourceUser, authorize.ActionDelete), h.Delete)
}
