package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(api fiber.Router, h *handler.AuthHandler, authRequired fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/login", h.Login)
	auth.Post("/logout", authRequired, h.Logout)
	auth.Get("/me", authRequired, h.Me)
	auth.Get("/can", authRequired, h.Can)
}
