package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
)

type ClinicHandler struct {
	clinics clinic.Service
}

func NewClinicHandler(clinics clinic.Service) *ClinicHandler {
	return &ClinicHandler{clinics: clinics}
}

// GET /clinic
func (h *ClinicHandler) Get(c fiber.Ctx) error {
	info := fiber.Map{"name": h.clinics.ClinicName()}
	if d, found := h.clinics.SelectedDoctor(); found {
		info["selectedDoctorId"] = d.ID
	}
	if p, found := h.clinics.SelectedPatient(); found {
		info["selectedPatientId"] = p.ID
	}
	return ok(c, info)
}

// PUT /clinic/name
func (h *ClinicHandler) SetName(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name == "" {
		return badRequest(c, "name is required")
	}

	h.clinics.SetClinicName(c.Context(), body.Name)
	return ok(c, fiber.Map{"name": body.Name})
}

// PUT /clinic/selection
//
// Sets the sticky doctor/patient selection. An empty string clears the
// corresponding selection; a nil field leaves it alone.
func (h *ClinicHandler) SetSelection(c fiber.Ctx) error {
	var body struct {
		DoctorID  *string `json:"doctorId"`
		PatientID *string `json:"patientId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if body.DoctorID != nil {
		h.clinics.SelectDoctor(c.Context(), *body.DoctorID)
	}
	if body.PatientID != nil {
		h.clinics.SelectPatient(c.Context(), *body.PatientID)
	}
	return noContent(c)
}

// GET /clinic/templates
func (h *ClinicHandler) Templates(c fiber.Ctx) error {
	return ok(c, model.ConditionTemplates)
}
