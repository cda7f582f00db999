package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
	"github.com/dentcare/dentcare_backend/internal/api/http/middleware"
	"github.com/dentcare/dentcare_backend/internal/model"
)

func (r *Router) registerClinicRoutes(
	api fiber.Router,
	h *handler.ClinicHandler,
	bh *handler.BackupHandler,
	authRequired fiber.Handler,
) {
	clinicGroup := api.Group("/clinic", authRequired)

	clinicGroup.Get("/", h.Get)
	clinicGroup.Get("/templates", h.Templates)
	clinicGroup.Put("/selection", h.SetSelection)

	admin := middleware.RequireRole(model.RoleSuperAdmin)
	clinicGroup.Put("/name", admin, h.SetName)

	backups := api.Group("/backups", authRequired, admin)
	backups.Get("/", bh.List)
	backups.Post("/run", bh.Run)
}
