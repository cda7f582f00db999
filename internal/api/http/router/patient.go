package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/handler"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	h *handler.PatientHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	patients := api.Group("/patients", authRequired)

	patients.Get("/", h.List)
	patients.Post("/", requirePerm(authorize.ResourcePatient, authorize.ActionAdd), h.Create)

	p := patients.Group("/:id")
	p.Get("/", h.Get)
	p.Patch("/", requirePerm(authorize.ResourcePatient, authorize.ActionEdit), h.Update)
	p.Delete("/", requirePerm(authorize.ResourcePatient, authorize.ActionDelete), h.Delete)

	// Tooth chart and visits are clinical records.
	p.Put("/teeth/:tooth", requirePerm(authorize.ResourceDental, authorize.ActionEdit), h.UpsertTooth)
	p.Post("/visits", requirePerm(authorize.ResourceDental, authorize.ActionAdd), h.CreateVisit)
	p.Patch("/visits/:vid", requirePerm(authorize.ResourceDental, authorize.ActionEdit), h.UpdateVisit)
	p.Delete("/visits/:vid", requirePerm(authorize.ResourceDental, authorize.ActionDelete), h.DeleteVisit)

	p.Get("/history", h.History)
}
