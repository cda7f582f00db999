package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/service/clinic"
)

type DoctorHandler struct {
	clinics clinic.Service
}

func NewDoctorHandler(clinics clinic.Service) *DoctorHandler {
	return &DoctorHandler{clinics: clinics}
}

// GET /doctors
func (h *DoctorHandler) List(c fiber.Ctx) error {
	return ok(c, h.clinics.Doctors())
}

// GET /doctors/:id
func (h *DoctorHandler) Get(c fiber.Ctx) error {
	d, found := h.clinics.Doctor(c.Params("id"))
	if !found {
		return notFound(c, "doctor not found")
	}
	return ok(c, d)
}

// GET /doctors/:id/patients
func (h *DoctorHandler) Patients(c fiber.Ctx) error {
	if _, found := h.clinics.Doctor(c.Params("id")); !found {
		return notFound(c, "doctor not found")
	}
	return ok(c, h.clinics.PatientsByDoctor(c.Params("id")))
}

// POST /doctors
func (h *DoctorHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name      string `json:"name"`
		Specialty string `json:"specialty"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name == "" {
		return badRequest(c, "name is required")
	}

	d := h.clinics.AddDoctor(c.Context(), clinic.CreateDoctorRequest{
		Name:      body.Name,
		Specialty: body.Specialty,
	})
	return created(c, d)
}

// PATCH /doctors/:id
func (h *DoctorHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	if _, found := h.clinics.Doctor(id); !found {
		return notFound(c, "doctor not found")
	}

	var body struct {
		Name      *string `json:"name"`
		Specialty *string `json:"specialty"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	h.clinics.UpdateDoctor(c.Context(), id, clinic.UpdateDoctorRequest{
		Name:      body.Name,
		Specialty: body.Specialty,
	})

	d, _ := h.clinics.Doctor(id)
	return ok(c, d)
}

// DELETE /doctors/:id
//
// Patients assigned to the doctor keep their assignment; there is no
// cascade.
func (h *DoctorHandler) Delete(c fiber.Ctx) error {
	h.clinics.DeleteDoctor(c.Context(), c.Params("id"))
	return noContent(c)
}
