package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

const testClinicName = "DentalCare Clinic"

func newTestStore(t *testing.T, store kv.Store, now *time.Time) Service {
	t.Helper()

	if now == nil {
		fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		now = &fixed
	}
	return New(context.Background(), store, testClinicName,
		WithClock(func() time.Time { return *now }))
}

func TestSeedsDemoDataOnFirstRun(t *testing.T) {
	store := kv.NewMemory()
	svc := newTestStore(t, store, nil)

	if got := len(svc.Doctors()); got != 2 {
		t.Fatalf("seeded %d doctors, want 2", got)
	}
	if got := len(svc.Patients()); got != 2 {
		t.Fatalf("seeded %d patients, want 2", got)
	}
	if svc.ClinicName() != testClinicName {
		t.Fatalf("clinic name = %q", svc.ClinicName())
	}
}

func TestEmptyPatientSlotIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := newTestStore(t, store, nil)

	for _, p := range svc.Patients() {
		svc.DeletePatient(ctx, p.ID)
	}

	again := newTestStore(t, store, nil)
	if got := len(again.Patients()); got != 0 {
		t.Fatalf("emptied patient list was reseeded to %d entries", got)
	}
}

func TestAddPatientNormalizesPhoneAndInitializesCollections(t *testing.T) {
	ctx := context.Background()
	svc := newTestStore(t, kv.NewMemory(), nil)

	p := svc.AddPatient(ctx, CreatePatientRequest{
		FirstName: "Олена",
		LastName:  "Коваль",
		Phone:     "0671234567",
		DoctorID:  "doctor-1",
	})

	if p.Phone != "+380671234567" {
		t.Fatalf("phone = %q, want +380671234567", p.Phone)
	}
	if p.DentalChart == nil || p.Visits == nil || p.ChangeHistory == nil {
		t.Fatal("nested collections must be initialized empty, not nil")
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("incomplete patient: %+v", p)
	}

	got, ok := svc.Patient(p.ID)
	if !ok || got.FirstName != "Олена" {
		t.Fatalf("Patient(%s) = %+v, %v", p.ID, got, ok)
	}
}

func TestUpdatePatientMergesSetFields(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestStore(t, kv.NewMemory(), &now)

	p := svc.AddPatient(ctx, CreatePatientRequest{
		FirstName: "John", LastName: "Smith", Phone: "+380501112233", DoctorID: "doctor-1",
	})

	now = now.Add(time.Hour)
	last := "Brown"
	phone := "0503334455"
	svc.UpdatePatient(ctx, p.ID, UpdatePatientRequest{LastName: &last, Phone: &phone})

	got, _ := svc.Patient(p.ID)
	if got.LastName != "Brown" {
		t.Fatalf("LastName = %q", got.LastName)
	}
	if got.FirstName != "John" {
		t.Fatalf("unset field changed: %q", got.FirstName)
	}
	if got.Phone != "+380503334455" {
		t.Fatalf("phone not normalized on update: %q", got.Phone)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatal("updatedAt not refreshed")
	}

	// Unknown id is a silent no-op.
	svc.UpdatePatient(ctx, "patient-missing", UpdatePatientRequest{LastName: &last})
}

func TestDeletePatientClearsSelection(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := newTestStore(t, store, nil)

	svc.SelectPatient(ctx, "patient-1")
	if _, ok := svc.SelectedPatient(); !ok {
		t.Fatal("selection did not stick")
	}

	svc.DeletePatient(ctx, "patient-1")
	if _, ok := svc.Patient("patient-1"); ok {
		t.Fatal("patient still present after delete")
	}
	if _, ok := svc.SelectedPatient(); ok {
		t.Fatal("selection must be cleared with the deleted patient")
	}

	// The cleared selection is persisted too.
	again := newTestStore(t, store, nil)
	if _, ok := again.SelectedPatient(); ok {
		t.Fatal("cleared selection came back after reconstruction")
	}
}

func strptr(s string) *string { return &s }

func TestUpsertToothRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestStore(t, kv.NewMemory(), &now)

	if err := svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 8, Description: strptr("Cavity detected"), TemplateID: strptr("cavity"),
	}); err != nil {
		t.Fatalf("UpsertToothRecord: %v", err)
	}

	now = now.Add(time.Hour)
	if err := svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 8, Description: strptr("Filling placed"), TemplateID: strptr("filling"),
	}); err != nil {
		t.Fatalf("UpsertToothRecord again: %v", err)
	}

	p, _ := svc.Patient("patient-2")
	if len(p.DentalChart) != 1 {
		t.Fatalf("chart has %d records for tooth 8, want 1", len(p.DentalChart))
	}
	rec := p.DentalChart[0]
	if rec.Description != "Filling placed" || rec.TemplateID != "filling" {
		t.Fatalf("record not updated: %+v", rec)
	}
	if !rec.UpdatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatal("record and patient updatedAt must both be refreshed")
	}
}

func TestUpsertToothRecordMergesPartialWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestStore(t, kv.NewMemory(), &now)

	file := model.FileAttachment{ID: "file-1", Name: "xray.png", MimeType: "image/png", Data: "aGk=", UploadedAt: now}
	if err := svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 8,
		Description: strptr("Cavity detected"),
		TemplateID:  strptr("cavity"),
		Files:       []model.FileAttachment{file},
	}); err != nil {
		t.Fatalf("UpsertToothRecord: %v", err)
	}

	// A write carrying only notes must leave the other fields alone.
	now = now.Add(time.Hour)
	if err := svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 8, Notes: strptr("follow up"),
	}); err != nil {
		t.Fatalf("UpsertToothRecord partial: %v", err)
	}

	p, _ := svc.Patient("patient-2")
	rec := p.DentalChart[0]
	if rec.Notes != "follow up" {
		t.Fatalf("Notes = %q", rec.Notes)
	}
	if rec.Description != "Cavity detected" || rec.TemplateID != "cavity" {
		t.Fatalf("unset fields changed: %+v", rec)
	}
	if len(rec.Files) != 1 || rec.Files[0].ID != "file-1" {
		t.Fatalf("attachments lost on partial write: %+v", rec.Files)
	}
	if !rec.UpdatedAt.Equal(now) {
		t.Fatal("updatedAt not refreshed")
	}

	// Clearing is writing empty strings explicitly.
	svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 8, Description: strptr(""), TemplateID: strptr(""),
	})
	p, _ = svc.Patient("patient-2")
	rec = p.DentalChart[0]
	if rec.Description != "" || rec.TemplateID != "" {
		t.Fatalf("explicit clear ignored: %+v", rec)
	}

	// A brand new record starts from zero values for unset fields.
	if err := svc.UpsertToothRecord(ctx, "patient-2", ToothRecordRequest{
		ToothNumber: 9, Notes: strptr("watch"),
	}); err != nil {
		t.Fatalf("UpsertToothRecord new tooth: %v", err)
	}
	p, _ = svc.Patient("patient-2")
	if len(p.DentalChart) != 2 {
		t.Fatalf("chart has %d records, want 2", len(p.DentalChart))
	}
	fresh := p.DentalChart[1]
	if fresh.Description != "" || fresh.TemplateID != "" || fresh.Files == nil {
		t.Fatalf("new record not initialized empty: %+v", fresh)
	}
}

func TestUpsertToothRecordRejectsBadNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestStore(t, kv.NewMemory(), nil)

	for _, n := range []int{0, 33, -1} {
		if err := svc.UpsertToothRecord(ctx, "patient-1", ToothRecordRequest{ToothNumber: n}); !errors.Is(err, ErrInvalidTooth) {
			t.Fatalf("tooth %d: err = %v, want ErrInvalidTooth", n, err)
		}
	}
}

func TestVisitLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestStore(t, kv.NewMemory(), &now)

	v, ok := svc.AddVisit(ctx, "patient-2", CreateVisitRequest{
		Date: "2025-07-10", Type: model.VisitFuture, Notes: "Consultation", DoctorID: "doctor-2",
	})
	if !ok {
		t.Fatal("AddVisit refused known patient")
	}

	now = now.Add(time.Hour)
	notes := "Consultation moved"
	date := "2025-07-17"
	svc.UpdateVisit(ctx, "patient-2", v.ID, UpdateVisitRequest{Notes: &notes, Date: &date})

	p, _ := svc.Patient("patient-2")
	var found *model.Visit
	for i := range p.Visits {
		if p.Visits[i].ID == v.ID {
			found = &p.Visits[i]
		}
	}
	if found == nil {
		t.Fatal("visit not found after update")
	}
	if found.Notes != notes || found.Date != date || found.Type != model.VisitFuture {
		t.Fatalf("visit after update: %+v", found)
	}
	if !p.UpdatedAt.Equal(now) {
		t.Fatal("patient updatedAt not refreshed by visit update")
	}

	svc.DeleteVisit(ctx, "patient-2", v.ID)
	p, _ = svc.Patient("patient-2")
	for _, vv := range p.Visits {
		if vv.ID == v.ID {
			t.Fatal("visit still present after delete")
		}
	}

	if _, ok := svc.AddVisit(ctx, "patient-missing", CreateVisitRequest{Date: "2025-07-10"}); ok {
		t.Fatal("AddVisit accepted unknown patient")
	}
}

func TestAddHistoryEntryAppends(t *testing.T) {
	ctx := context.Background()
	svc := newTestStore(t, kv.NewMemory(), nil)

	svc.AddHistoryEntry(ctx, "patient-1", HistoryRequest{
		UserID: "admin-1", UserName: "admin",
		Action: model.HistoryEdit, Target: model.TargetPatient,
		Details: "Телефон: +1 (555) 123-4567 → +380501112233",
	})

	p, _ := svc.Patient("patient-1")
	if len(p.ChangeHistory) != 1 {
		t.Fatalf("history has %d entries, want 1", len(p.ChangeHistory))
	}
	e := p.ChangeHistory[0]
	if e.ID == "" || e.Timestamp.IsZero() || e.Action != model.HistoryEdit {
		t.Fatalf("incomplete entry: %+v", e)
	}
}

func TestSearchPatients(t *testing.T) {
	svc := newTestStore(t, kv.NewMemory(), nil)

	cases := []struct {
		name     string
		query    string
		doctorID string
		want     []string
	}{
		{"case-insensitive name", "WILLIAMS", "", []string{"patient-1"}},
		{"partial name", "sar", "", []string{"patient-2"}},
		{"visit date substring", "2025-01", "", []string{"patient-1", "patient-2"}},
		{"exact visit date", "2025-01-20", "", []string{"patient-2"}},
		{"doctor scoped", "2025-01", "doctor-2", nil},
		{"empty query lists all", "", "", []string{"patient-1", "patient-2"}},
		{"no match", "zzz", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.SearchPatients(tc.query, tc.doctorID)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("result %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSearchIgnoresMiddleName(t *testing.T) {
	ctx := context.Background()
	svc := newTestStore(t, kv.NewMemory(), nil)

	p := svc.AddPatient(ctx, CreatePatientRequest{
		FirstName:  "Олена",
		LastName:   "Коваль",
		MiddleName: "Петрівна",
		DoctorID:   "doctor-1",
	})

	if got := svc.SearchPatients("Петрівна", ""); len(got) != 0 {
		t.Fatalf("middle name matched %d patients, want 0", len(got))
	}
	got := svc.SearchPatients("коваль", "")
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("last name search = %+v", got)
	}
}

func TestDoctorLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestStore(t, kv.NewMemory(), nil)

	d := svc.AddDoctor(ctx, CreateDoctorRequest{Name: "Dr. Lee", Specialty: "Endodontics"})
	if d.ID == "" {
		t.Fatal("doctor id not assigned")
	}

	spec := "Oral Surgery"
	svc.UpdateDoctor(ctx, d.ID, UpdateDoctorRequest{Specialty: &spec})
	got, ok := svc.Doctor(d.ID)
	if !ok || got.Specialty != spec || got.Name != "Dr. Lee" {
		t.Fatalf("doctor after update: %+v, %v", got, ok)
	}

	// Deleting a doctor leaves their patients assigned to the stale id.
	svc.DeleteDoctor(ctx, "doctor-1")
	if _, ok := svc.Doctor("doctor-1"); ok {
		t.Fatal("doctor-1 still present after delete")
	}
	if got := len(svc.PatientsByDoctor("doctor-1")); got != 2 {
		t.Fatalf("patients of deleted doctor = %d, want 2", got)
	}
}

func TestStateSurvivesReconstruction(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := newTestStore(t, store, nil)

	svc.SetClinicName(ctx, "Стоматологія Усмішка")
	svc.SelectDoctor(ctx, "doctor-2")
	svc.SelectPatient(ctx, "patient-2")
	p := svc.AddPatient(ctx, CreatePatientRequest{FirstName: "New", LastName: "Patient", DoctorID: "doctor-2"})

	again := newTestStore(t, store, nil)
	if again.ClinicName() != "Стоматологія Усмішка" {
		t.Fatalf("clinic name = %q", again.ClinicName())
	}
	if d, ok := again.SelectedDoctor(); !ok || d.ID != "doctor-2" {
		t.Fatalf("selected doctor = %+v, %v", d, ok)
	}
	if sp, ok := again.SelectedPatient(); !ok || sp.ID != "patient-2" {
		t.Fatalf("selected patient = %+v, %v", sp, ok)
	}
	if _, ok := again.Patient(p.ID); !ok {
		t.Fatal("added patient lost across reconstruction")
	}
}

func TestSnapshotReturnsDeepCopies(t *testing.T) {
	svc := newTestStore(t, kv.NewMemory(), nil)

	patients, doctors := svc.Snapshot()
	if len(patients) != 2 || len(doctors) != 2 {
		t.Fatalf("snapshot sizes: %d patients, %d doctors", len(patients), len(doctors))
	}

	patients[0].FirstName = "Mutated"
	patients[0].Visits[0].Notes = "Mutated"
	got, _ := svc.Patient(patients[0].ID)
	if got.FirstName == "Mutated" || got.Visits[0].Notes == "Mutated" {
		t.Fatal("snapshot shares state with the store")
	}
}
