package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
	"github.com/dentcare/dentcare_backend/internal/api/http/middleware"
	"github.com/dentcare/dentcare_backend/internal/model"
)

func (r *Router) registerDoctorRoutes(api fiber.Router, h *handler.DoctorHandler, authRequired fiber.Handler) {
	doctors := api.Group("/doctors", authRequired)

	doctors.Get("/", h.List)
	doctors.Get("/:id", h.Get)
	doctors.Get("/:id/patients", h.Patients)

	// Doctor administration is outside the permission table; only the
	// super-admin manages the roster.
	admin := middleware.RequireRole(model.RoleSuperAdmin)
	doctors.Post("/", admin, h.Create)
	doctors.Patch("/:id", admin, h.Update)
	doctors.Delete("/:id", admin, h.Delete)
}
