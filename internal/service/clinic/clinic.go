// Package clinic is the authoritative store for doctors, patients and the
// UI selection state. All reads come from memory; every mutation persists
// the affected slot through the key-value adapter.
package clinic

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/phone"
	"github.com/dentcare/dentcare_backend/pkg/util/ids"
)

// Persisted slots owned by this store.
const (
	SlotClinicName      = "clinic_name"
	SlotDoctors         = "doctors"
	SlotPatients        = "patients"
	SlotSelectedDoctor  = "selected_doctor"
	SlotSelectedPatient = "selected_patient"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePatientRequest struct {
	FirstName   string
	LastName    string
	MiddleName  string
	Gender      model.Gender
	Phone       string
	DateOfBirth string
	DoctorID    string
}

// UpdatePatientRequest carries only the fields to change; nil leaves the
// field untouched.
type UpdatePatientRequest struct {
	FirstName   *string
	LastName    *string
	MiddleName  *string
	Gender      *model.Gender
	Phone       *string
	DateOfBirth *string
	DoctorID    *string
}

type CreateDoctorRequest struct {
	Name      string
	Specialty string
}

type UpdateDoctorRequest struct {
	Name      *string
	Specialty *string
}

type CreateVisitRequest struct {
	Date     string
	Type     model.VisitType
	Notes    string
	DoctorID string
}

type UpdateVisitRequest struct {
	Date     *string
	Type     *model.VisitType
	Notes    *string
	DoctorID *string
}

// ToothRecordRequest is a partial chart write: nil fields keep the existing
// record's values. Clearing a tooth is writing empty strings explicitly.
type ToothRecordRequest struct {
	ToothNumber int
	Description *string
	TemplateID  *string
	Notes       *string
	Files       []model.FileAttachment
}

type HistoryRequest struct {
	UserID   string
	UserName string
	Action   model.HistoryAction
	Target   model.HistoryTarget
	Details  string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	ClinicName() string
	SetClinicName(ctx context.Context, name string)

	Doctors() []model.Doctor
	Doctor(id string) (model.Doctor, bool)
	AddDoctor(ctx context.Context, req CreateDoctorRequest) model.Doctor
	// UpdateDoctor and DeleteDoctor are silent no-ops on an unknown id.
	// Deleting a doctor does not touch patients assigned to them.
	UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest)
	DeleteDoctor(ctx context.Context, id string)

	Patients() []model.Patient
	Patient(id string) (model.Patient, bool)
	PatientsByDoctor(doctorID string) []model.Patient

	// AddPatient normalizes the phone number and initializes the nested
	// collections empty.
	AddPatient(ctx context.Context, req CreatePatientRequest) model.Patient

	// UpdatePatient merges the set fields and refreshes the patient's
	// updatedAt. It does not append change history; recording the edit is
	// the caller's responsibility.
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest)

	// DeletePatient also clears the patient selection when it pointed at
	// the removed patient.
	DeletePatient(ctx context.Context, id string)

	// UpsertToothRecord merges the request into the record at its tooth
	// position, creating the record when the tooth has none; at most one
	// record exists per tooth. Both the record's and the patient's
	// updatedAt are refreshed.
	UpsertToothRecord(ctx context.Context, patientID string, req ToothRecordRequest) error

	AddVisit(ctx context.Context, patientID string, req CreateVisitRequest) (model.Visit, bool)
	UpdateVisit(ctx context.Context, patientID, visitID string, req UpdateVisitRequest)
	DeleteVisit(ctx context.Context, patientID, visitID string)

	// AddHistoryEntry appends to the patient's audit trail. The trail is
	// append-only; there is no operation that edits or removes entries.
	AddHistoryEntry(ctx context.Context, patientID string, req HistoryRequest)

	// SearchPatients matches the query case-insensitively against patient
	// names and as a raw substring against visit dates. An empty doctorID
	// searches the whole clinic.
	SearchPatients(query, doctorID string) []model.Patient

	SelectedDoctor() (model.Doctor, bool)
	SelectDoctor(ctx context.Context, id string)
	SelectedPatient() (model.Patient, bool)
	SelectPatient(ctx context.Context, id string)

	// Snapshot returns deep copies of the datasets a backup captures.
	Snapshot() ([]model.Patient, []model.Doctor)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type clinicStore struct {
	mu    sync.Mutex
	kv    kv.Store
	clock func() time.Time

	clinicName      string
	doctors         []model.Doctor
	patients        []model.Patient
	selectedDoctor  string
	selectedPatient string
}

type Option func(*clinicStore)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *clinicStore) { s.clock = clock }
}

// New reconstructs the store from storage. Doctor and patient slots that
// have never been written are seeded with the demo dataset; slots that hold
// an empty list stay empty.
func New(ctx context.Context, store kv.Store, defaultClinicName string, opts ...Option) Service {
	s := &clinicStore{
		kv:    store,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.clinicName = kv.Read(ctx, store, SlotClinicName, defaultClinicName)

	if s.slotMissing(ctx, SlotDoctors) {
		s.doctors = model.DefaultDoctors()
		s.persistDoctors(ctx)
		slog.Info("seeded default doctors", "doctors", len(s.doctors))
	} else {
		s.doctors = kv.Read(ctx, store, SlotDoctors, []model.Doctor(nil))
	}

	if s.slotMissing(ctx, SlotPatients) {
		s.patients = model.DefaultPatients(s.clock())
		s.persistPatients(ctx)
		slog.Info("seeded default patients", "patients", len(s.patients))
	} else {
		s.patients = kv.Read(ctx, store, SlotPatients, []model.Patient(nil))
	}

	if id := kv.Read(ctx, store, SlotSelectedDoctor, (*string)(nil)); id != nil {
		s.selectedDoctor = *id
	}
	if id := kv.Read(ctx, store, SlotSelectedPatient, (*string)(nil)); id != nil {
		s.selectedPatient = *id
	}

	return s
}

func (s *clinicStore) slotMissing(ctx context.Context, key string) bool {
	_, err := s.kv.Get(ctx, key)
	return errors.Is(err, kv.ErrNotFound)
}

// ----------------------------
// Clinic name
// ----------------------------

func (s *clinicStore) ClinicName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clinicName
}

func (s *clinicStore) SetClinicName(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clinicName = name
	_ = kv.Write(ctx, s.kv, SlotClinicName, name)
}

// ----------------------------
// Doctors
// ----------------------------

func (s *clinicStore) Doctors() []model.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CloneDoctors(s.doctors)
}

func (s *clinicStore) Doctor(id string) (model.Doctor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findDoctor(id)
}

func (s *clinicStore) AddDoctor(ctx context.Context, req CreateDoctorRequest) model.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.Doctor{
		ID:        ids.New(ids.PrefixDoctor),
		Name:      req.Name,
		Specialty: req.Specialty,
	}
	s.doctors = append(s.doctors, d)
	s.persistDoctors(ctx)
	return d
}

func (s *clinicStore) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doctors {
		if s.doctors[i].ID != id {
			continue
		}
		if req.Name != nil {
			s.doctors[i].Name = *req.Name
		}
		if req.Specialty != nil {
			s.doctors[i].Specialty = *req.Specialty
		}
		s.persistDoctors(ctx)
		return
	}
}

func (s *clinicStore) DeleteDoctor(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doctors[:0]
	removed := false
	for _, d := range s.doctors {
		if d.ID == id {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	s.doctors = kept
	if removed {
		s.persistDoctors(ctx)
	}
}

// ----------------------------
// Patients
// ----------------------------

func (s *clinicStore) Patients() []model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.ClonePatients(s.patients)
}

func (s *clinicStore) Patient(id string) (model.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.findPatient(id); p != nil {
		return p.Clone(), true
	}
	return model.Patient{}, false
}

func (s *clinicStore) PatientsByDoctor(doctorID string) []model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Patient
	for i := range s.patients {
		if s.patients[i].DoctorID == doctorID {
			out = append(out, s.patients[i].Clone())
		}
	}
	return out
}

func (s *clinicStore) AddPatient(ctx context.Context, req CreatePatientRequest) model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	p := model.Patient{
		ID:            ids.New(ids.PrefixPatient),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		MiddleName:    req.MiddleName,
		Gender:        req.Gender,
		Phone:         phone.Normalize(req.Phone),
		DateOfBirth:   req.DateOfBirth,
		DoctorID:      req.DoctorID,
		DentalChart:   []model.ToothRecord{},
		Visits:        []model.Visit{},
		ChangeHistory: []model.ChangeHistoryEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.patients = append(s.patients, p)
	s.persistPatients(ctx)
	return p.Clone()
}

func (s *clinicStore) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(id)
	if p == nil {
		return
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.MiddleName != nil {
		p.MiddleName = *req.MiddleName
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Phone != nil {
		p.Phone = phone.Normalize(*req.Phone)
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = *req.DateOfBirth
	}
	if req.DoctorID != nil {
		p.DoctorID = *req.DoctorID
	}
	p.UpdatedAt = s.clock()
	s.persistPatients(ctx)
}

func (s *clinicStore) DeletePatient(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.patients[:0]
	removed := false
	for _, p := range s.patients {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.patients = kept
	if !removed {
		return
	}

	if s.selectedPatient == id {
		s.selectedPatient = ""
		s.persistSelection(ctx, SlotSelectedPatient, "")
	}
	s.persistPatients(ctx)
}

// ----------------------------
// Tooth chart
// ----------------------------

func (s *clinicStore) UpsertToothRecord(ctx context.Context, patientID string, req ToothRecordRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidToothNumber(req.ToothNumber) {
		return ErrInvalidTooth
	}

	p := s.findPatient(patientID)
	if p == nil {
		return nil
	}

	now := s.clock()
	rec := model.ToothRecord{
		ToothNumber: req.ToothNumber,
		Files:       []model.FileAttachment{},
	}
	idx := -1
	for i := range p.DentalChart {
		if p.DentalChart[i].ToothNumber == req.ToothNumber {
			idx = i
			rec = p.DentalChart[i]
			break
		}
	}

	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.TemplateID != nil {
		rec.TemplateID = *req.TemplateID
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.Files != nil {
		rec.Files = req.Files
	}
	rec.UpdatedAt = now

	if idx >= 0 {
		p.DentalChart[idx] = rec
	} else {
		p.DentalChart = append(p.DentalChart, rec)
	}

	p.UpdatedAt = now
	s.persistPatients(ctx)
	return nil
}

// ----------------------------
// Visits
// ----------------------------

func (s *clinicStore) AddVisit(ctx context.Context, patientID string, req CreateVisitRequest) (model.Visit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(patientID)
	if p == nil {
		return model.Visit{}, false
	}

	v := model.Visit{
		ID:       ids.New(ids.PrefixVisit),
		Date:     req.Date,
		Type:     req.Type,
		Notes:    req.Notes,
		DoctorID: req.DoctorID,
	}
	p.Visits = append(p.Visits, v)
	p.UpdatedAt = s.clock()
	s.persistPatients(ctx)
	return v, true
}

func (s *clinicStore) UpdateVisit(ctx context.Context, patientID, visitID string, req UpdateVisitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(patientID)
	if p == nil {
		return
	}

	for i := range p.Visits {
		if p.Visits[i].ID != visitID {
			continue
		}
		v := &p.Visits[i]
		if req.Date != nil {
			v.Date = *req.Date
		}
		if req.Type != nil {
			v.Type = *req.Type
		}
		if req.Notes != nil {
			v.Notes = *req.Notes
		}
		if req.DoctorID != nil {
			v.DoctorID = *req.DoctorID
		}
		p.UpdatedAt = s.clock()
		s.persistPatients(ctx)
		return
	}
}

func (s *clinicStore) DeleteVisit(ctx context.Context, patientID, visitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(patientID)
	if p == nil {
		return
	}

	kept := p.Visits[:0]
	removed := false
	for _, v := range p.Visits {
		if v.ID == visitID {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	p.Visits = kept
	if removed {
		p.UpdatedAt = s.clock()
		s.persistPatients(ctx)
	}
}

// ----------------------------
// Change history
// ----------------------------

func (s *clinicStore) AddHistoryEntry(ctx context.Context, patientID string, req HistoryRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(patientID)
	if p == nil {
		return
	}

	p.ChangeHistory = append(p.ChangeHistory, model.ChangeHistoryEntry{
		ID:        ids.New(ids.PrefixHistory),
		Timestamp: s.clock(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		Action:    req.Action,
		Target:    req.Target,
		Details:   req.Details,
	})
	s.persistPatients(ctx)
}

// ----------------------------
// Search
// ----------------------------

func (s *clinicStore) SearchPatients(query, doctorID string) []model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Patient
	for i := range s.patients {
		p := &s.patients[i]
		if doctorID != "" && p.DoctorID != doctorID {
			continue
		}
		if q == "" || matchesPatient(p, q, query) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// matchesPatient checks the lowered query against the patient's names and
// the raw query against visit dates. Dates are compared verbatim, so a
// query like "2025-01" matches any January 2025 visit.
func matchesPatient(p *model.Patient, lowered, raw string) bool {
	full := strings.ToLower(p.FirstName + " " + p.LastName)
	if strings.Contains(full, lowered) {
		return true
	}
	for _, v := range p.Visits {
		if strings.Contains(v.Date, raw) {
			return true
		}
	}
	return false
}

// ----------------------------
// Selection
// ----------------------------

func (s *clinicStore) SelectedDoctor() (model.Doctor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedDoctor == "" {
		return model.Doctor{}, false
	}
	return s.findDoctor(s.selectedDoctor)
}

func (s *clinicStore) SelectDoctor(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedDoctor = id
	s.persistSelection(ctx, SlotSelectedDoctor, id)
}

func (s *clinicStore) SelectedPatient() (model.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedPatient == "" {
		return model.Patient{}, false
	}
	if p := s.findPatient(s.selectedPatient); p != nil {
		return p.Clone(), true
	}
	return model.Patient{}, false
}

func (s *clinicStore) SelectPatient(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedPatient = id
	s.persistSelection(ctx, SlotSelectedPatient, id)
}

// ----------------------------
// Backup view
// ----------------------------

func (s *clinicStore) Snapshot() ([]model.Patient, []model.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.ClonePatients(s.patients), model.CloneDoctors(s.doctors)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *clinicStore) findDoctor(id string) (model.Doctor, bool) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return model.Doctor{}, false
}

func (s *clinicStore) findPatient(id string) *model.Patient {
	for i := range s.patients {
		if s.patients[i].ID == id {
			return &s.patients[i]
		}
	}
	return nil
}

// Persist failures are logged by the kv adapter; in-memory state stays
// authoritative for the session.
func (s *clinicStore) persistDoctors(ctx context.Context) {
	_ = kv.Write(ctx, s.kv, SlotDoctors, s.doctors)
}

func (s *clinicStore) persistPatients(ctx context.Context) {
	_ = kv.Write(ctx, s.kv, SlotPatients, s.patients)
}

func (s *clinicStore) persistSelection(ctx context.Context, slot, id string) {
	if id == "" {
		_ = kv.Write(ctx, s.kv, slot, (*string)(nil))
		return
	}
	_ = kv.Write(ctx, s.kv, slot, &id)
}
