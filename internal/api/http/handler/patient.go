package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/middleware"
	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/service/clinic"
	"github.com/dentcare/dentcare_backend/pkg/phone"
)

type PatientHandler struct {
	clinics clinic.Service
}

func NewPatientHandler(clinics clinic.Service) *PatientHandler {
	return &PatientHandler{clinics: clinics}
}

// recordHistory appends an audit entry attributed to the authenticated
// user. The store itself never writes history; the handlers do.
func (h *PatientHandler) recordHistory(c fiber.Ctx, patientID string, action model.HistoryAction, target model.HistoryTarget, details string) {
	u, okUser := middleware.UserFromFiber(c)
	if !okUser {
		return
	}
	h.clinics.AddHistoryEntry(c.Context(), patientID, clinic.HistoryRequest{
		UserID:   u.ID,
		UserName: u.DisplayName,
		Action:   action,
		Target:   target,
		Details:  details,
	})
}

// ---------------------------------------------------------------------------
// Patient CRUD
// ---------------------------------------------------------------------------

// GET /patients?q=...&doctor_id=...
func (h *PatientHandler) List(c fiber.Ctx) error {
	return ok(c, h.clinics.SearchPatients(c.Query("q"), c.Query("doctor_id")))
}

// GET /patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	p, found := h.clinics.Patient(c.Params("id"))
	if !found {
		return notFound(c, "patient not found")
	}
	return ok(c, p)
}

// POST /patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var body struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		MiddleName  string `json:"middleName"`
		Gender      string `json:"gender"`
		Phone       string `json:"phone"`
		DateOfBirth string `json:"dateOfBirth"`
		DoctorID    string `json:"doctorId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.FirstName == "" || body.LastName == "" {
		return badRequest(c, "firstName and lastName are required")
	}

	p := h.clinics.AddPatient(c.Context(), clinic.CreatePatientRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		MiddleName:  body.MiddleName,
		Gender:      model.Gender(body.Gender),
		Phone:       body.Phone,
		DateOfBirth: body.DateOfBirth,
		DoctorID:    body.DoctorID,
	})

	h.recordHistory(c, p.ID, model.HistoryCreate, model.TargetPatient, "Картку пацієнта створено")
	return created(c, p)
}

// PATCH /patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	before, found := h.clinics.Patient(id)
	if !found {
		return notFound(c, "patient not found")
	}

	var body struct {
		FirstName   *string `json:"firstName"`
		LastName    *string `json:"lastName"`
		MiddleName  *string `json:"middleName"`
		Gender      *string `json:"gender"`
		Phone       *string `json:"phone"`
		DateOfBirth *string `json:"dateOfBirth"`
		DoctorID    *string `json:"doctorId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := clinic.UpdatePatientRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		MiddleName:  body.MiddleName,
		Phone:       body.Phone,
		DateOfBirth: body.DateOfBirth,
		DoctorID:    body.DoctorID,
	}
	if body.Gender != nil {
		g := model.Gender(*body.Gender)
		req.Gender = &g
	}

	h.clinics.UpdatePatient(c.Context(), id, req)

	after, _ := h.clinics.Patient(id)
	if details := patientDiff(before, after); details != "" {
		h.recordHistory(c, id, model.HistoryEdit, model.TargetPatient, details)
		after, _ = h.clinics.Patient(id)
	}

	return ok(c, after)
}

// DELETE /patients/:id
func (h *PatientHandler) Delete(c fiber.Ctx) error {
	h.clinics.DeletePatient(c.Context(), c.Params("id"))
	return noContent(c)
}

// patientDiff summarizes the changed demographic fields as
// "Поле: старе → нове" lines for the change history.
func patientDiff(before, after model.Patient) string {
	var parts []string
	add := func(label, from, to string) {
		if from != to {
			parts = append(parts, fmt.Sprintf("%s: %s → %s", label, orDash(from), orDash(to)))
		}
	}

	add("Ім'я", before.FirstName, after.FirstName)
	add("Прізвище", before.LastName, after.LastName)
	add("По батькові", before.MiddleName, after.MiddleName)
	add("Стать", string(before.Gender), string(after.Gender))
	add("Телефон", phone.FormatDisplay(before.Phone), phone.FormatDisplay(after.Phone))
	add("Дата народження", before.DateOfBirth, after.DateOfBirth)
	add("Лікар", before.DoctorID, after.DoctorID)

	return strings.Join(parts, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// ---------------------------------------------------------------------------
// Tooth chart
// ---------------------------------------------------------------------------

// PUT /patients/:id/teeth/:tooth
func (h *PatientHandler) UpsertTooth(c fiber.Ctx) error {
	id := c.Params("id")
	if _, found := h.clinics.Patient(id); !found {
		return notFound(c, "patient not found")
	}

	tooth, err := strconv.Atoi(c.Params("tooth"))
	if err != nil {
		return badRequest(c, "invalid tooth number")
	}

	// Absent fields leave the existing record's values alone.
	var body struct {
		Description *string                `json:"description"`
		TemplateID  *string                `json:"templateId"`
		Notes       *string                `json:"notes"`
		Files       []model.FileAttachment `json:"files"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.TemplateID != nil && *body.TemplateID != "" {
		if _, found := model.TemplateByID(*body.TemplateID); !found {
			return badRequest(c, "unknown condition template")
		}
	}

	if err := h.clinics.UpsertToothRecord(c.Context(), id, clinic.ToothRecordRequest{
		ToothNumber: tooth,
		Description: body.Description,
		TemplateID:  body.TemplateID,
		Notes:       body.Notes,
		Files:       body.Files,
	}); err != nil {
		if errors.Is(err, clinic.ErrInvalidTooth) {
			return badRequest(c, err.Error())
		}
		return err
	}

	p, _ := h.clinics.Patient(id)
	detail := fmt.Sprintf("Зуб %d", tooth)
	for _, rec := range p.DentalChart {
		if rec.ToothNumber == tooth && rec.Description != "" {
			detail = fmt.Sprintf("Зуб %d: %s", tooth, rec.Description)
		}
	}
	h.recordHistory(c, id, model.HistoryEdit, model.TargetTooth, detail)

	return ok(c, p.DentalChart)
}

// ---------------------------------------------------------------------------
// Visits
// ---------------------------------------------------------------------------

// POST /patients/:id/visits
func (h *PatientHandler) CreateVisit(c fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Date     string `json:"date"`
		Type     string `json:"type"`
		Notes    string `json:"notes"`
		DoctorID string `json:"doctorId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Date == "" {
		return badRequest(c, "date is required")
	}
	vt := model.VisitType(body.Type)
	if vt != model.VisitPast && vt != model.VisitFuture {
		return badRequest(c, "type must be past or future")
	}

	v, found := h.clinics.AddVisit(c.Context(), id, clinic.CreateVisitRequest{
		Date:     body.Date,
		Type:     vt,
		Notes:    body.Notes,
		DoctorID: body.DoctorID,
	})
	if !found {
		return notFound(c, "patient not found")
	}

	h.recordHistory(c, id, model.HistoryCreate, model.TargetVisit,
		fmt.Sprintf("Візит %s додано", v.Date))
	return created(c, v)
}

// PATCH /patients/:id/visits/:vid
func (h *PatientHandler) UpdateVisit(c fiber.Ctx) error {
	id := c.Params("id")
	vid := c.Params("vid")

	p, found := h.clinics.Patient(id)
	if !found {
		return notFound(c, "patient not found")
	}
	var existing *model.Visit
	for i := range p.Visits {
		if p.Visits[i].ID == vid {
			existing = &p.Visits[i]
		}
	}
	if existing == nil {
		return notFound(c, "visit not found")
	}

	var body struct {
		Date     *string `json:"date"`
		Type     *string `json:"type"`
		Notes    *string `json:"notes"`
		DoctorID *string `json:"doctorId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := clinic.UpdateVisitRequest{
		Date:     body.Date,
		Notes:    body.Notes,
		DoctorID: body.DoctorID,
	}
	if body.Type != nil {
		vt := model.VisitType(*body.Type)
		if vt != model.VisitPast && vt != model.VisitFuture {
			return badRequest(c, "type must be past or future")
		}
		req.Type = &vt
	}

	h.clinics.UpdateVisit(c.Context(), id, vid, req)
	h.recordHistory(c, id, model.HistoryEdit, model.TargetVisit,
		fmt.Sprintf("Візит %s змінено", existing.Date))

	p, _ = h.clinics.Patient(id)
	return ok(c, p.Visits)
}

// DELETE /patients/:id/visits/:vid
func (h *PatientHandler) DeleteVisit(c fiber.Ctx) error {
	id := c.Params("id")
	vid := c.Params("vid")

	p, found := h.clinics.Patient(id)
	if !found {
		return notFound(c, "patient not found")
	}
	for _, v := range p.Visits {
		if v.ID == vid {
			h.clinics.DeleteVisit(c.Context(), id, vid)
			h.recordHistory(c, id, model.HistoryDelete, model.TargetVisit,
				fmt.Sprintf("Візит %s видалено", v.Date))
			return noContent(c)
		}
	}
	return notFound(c, "visit not found")
}

// ---------------------------------------------------------------------------
// Change history
// ---------------------------------------------------------------------------

// GET /patients/:id/history
func (h *PatientHandler) History(c fiber.Ctx) error {
	p, found := h.clinics.Patient(c.Params("id"))
	if !found {
		return notFound(c, "patient not found")
	}
	return ok(c, p.ChangeHistory)
}
