// Package model holds the clinic entities persisted through the key-value
// adapter. The JSON field names are the on-disk slot layout; changing them
// breaks existing installations.
package model

import "time"

type Role string

const (
	RoleSuperAdmin    Role = "super-admin"
	RoleDoctor        Role = "doctor"
	RoleAdministrator Role = "administrator"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	DisplayName  string    `json:"displayName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Patient struct {
	ID            string               `json:"id"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	MiddleName    string               `json:"middleName,omitempty"`
	Gender        Gender               `json:"gender,omitempty"`
	Phone         string               `json:"phone"`
	DateOfBirth   string               `json:"dateOfBirth,omitempty"`
	DoctorID      string               `json:"doctorId"`
	DentalChart   []ToothRecord        `json:"dentalChart"`
	Visits        []Visit              `json:"visits"`
	ChangeHistory []ChangeHistoryEntry `json:"changeHistory"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ToothRecord describes one tooth of a patient's chart, keyed by the
// Universal Numbering System position (1..32). At most one record exists
// per tooth; records are cleared, never removed.
type ToothRecord struct {
	ToothNumber int              `json:"toothNumber"`
	Description string           `json:"description"`
	TemplateID  string           `json:"templateId"`
	Notes       string           `json:"notes"`
	Files       []FileAttachment `json:"files"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// FileAttachment carries its content inline; there is no external object
// storage.
type FileAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type VisitType string

const (
	VisitPast   VisitType = "past"
	VisitFuture VisitType = "future"
)

// Visit is a clinical appointment. Type is set by the user at creation and
// is never derived from Date.
type Visit struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"` // ISO date, e.g. 2025-01-15
	Type     VisitType `json:"type"`
	Notes    string    `json:"notes"`
	DoctorID string    `json:"doctorId"`
}

type HistoryAction string

const (
	HistoryCreate HistoryAction = "create"
	HistoryEdit   HistoryAction = "edit"
	HistoryDelete HistoryAction = "delete"
)

type HistoryTarget string

const (
	TargetPatient HistoryTarget = "patient"
	TargetTooth   HistoryTarget = "tooth"
	TargetVisit   HistoryTarget = "visit"
)

// ChangeHistoryEntry is one row of a patient's append-only audit trail.
type ChangeHistoryEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Action    HistoryAction `json:"action"`
	Target    HistoryTarget `json:"target"`
	Details   string        `json:"details"`
}

// Tooth numbering (Universal Numbering System), adult dentition.
const (
	FirstTooth = 1
	LastTooth  = 32
)

var (
	UpperTeeth = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	LowerTeeth = []int{32, 31, 30, 29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17}
)

// ValidToothNumber reports whether n is a Universal System position.
func ValidToothNumber(n int) bool {
	return n >= FirstTooth && n <= LastTooth
}
