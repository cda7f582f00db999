package model

import "time"

// SeedUser pairs a demo account with its plaintext password. The password
// is hashed by the session store when the roster is first persisted; only
// the hash is ever written to storage.
type SeedUser struct {
	User     User
	Password string
}

// DefaultUsers is the first-run demo roster: one account per role plus a
// second doctor.
func DefaultUsers(now time.Time) []SeedUser {
	return []SeedUser{
		{
			User: User{
				ID:          "admin-1",
				Username:    "admin",
				DisplayName: "Супер Адміністратор",
				Role:        RoleSuperAdmin,
				CreatedAt:   now,
			},
			Password: "admin123",
		},
		{
			User: User{
				ID:          "doctor-1",
				Username:    "verkhovskyi",
				DisplayName: "Верховський Олександр",
				Role:        RoleDoctor,
				CreatedAt:   now,
			},
			Password: "doctor123",
		},
		{
			User: User{
				ID:          "doctor-2",
				Username:    "anton",
				DisplayName: "Антон Євгенійович",
				Role:        RoleDoctor,
				CreatedAt:   now,
			},
			Password: "doctor123",
		},
		{
			User: User{
				ID:          "receptionist-1",
				Username:    "reception",
				DisplayName: "Адміністратор Клініки",
				Role:        RoleAdministrator,
				CreatedAt:   now,
			},
			Password: "reception123",
		},
	}
}

// DefaultDoctors is the first-run doctor roster.
func DefaultDoctors() []Doctor {
	return []Doctor{
		{ID: "doctor-1", Name: "Dr. Smith", Specialty: "General Dentistry"},
		{ID: "doctor-2", Name: "Dr. Johnson", Specialty: "Orthodontics"},
	}
}

// DefaultPatients is the first-run demo patient list, with sample tooth
// records and visits.
func DefaultPatients(now time.Time) []Patient {
	return []Patient{
		{
			ID:          "patient-1",
			FirstName:   "John",
			LastName:    "Williams",
			Phone:       "+1 (555) 123-4567",
			DateOfBirth: "1985-03-15",
			DoctorID:    "doctor-1",
			DentalChart: []ToothRecord{
				{ToothNumber: 3, Description: "Cavity detected", TemplateID: "cavity", Files: []FileAttachment{}, UpdatedAt: now},
				{ToothNumber: 14, Description: "Crown placed", TemplateID: "crown", Files: []FileAttachment{}, UpdatedAt: now},
			},
			Visits: []Visit{
				{ID: "v1", Date: "2025-01-15", Type: VisitPast, Notes: "Regular checkup", DoctorID: "doctor-1"},
				{ID: "v2", Date: "2025-02-15", Type: VisitFuture, Notes: "Follow-up appointment", DoctorID: "doctor-1"},
			},
			ChangeHistory: []ChangeHistoryEntry{},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:          "patient-2",
			FirstName:   "Sarah",
			LastName:    "Davis",
			Phone:       "+1 (555) 987-6543",
			DateOfBirth: "1990-07-22",
			DoctorID:    "doctor-1",
			DentalChart: []ToothRecord{},
			Visits: []Visit{
				{ID: "v3", Date: "2025-01-20", Type: VisitPast, Notes: "Cleaning", DoctorID: "doctor-1"},
			},
			ChangeHistory: []ChangeHistoryEntry{},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
