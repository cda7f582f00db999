// Package ids generates entity identifiers. Ids carry a human-readable
// entity prefix followed by a UUID, e.g. "patient-1b4e28ba-...".
package ids

import "github.com/google/uuid"

const (
	PrefixUser    = "user"
	PrefixDoctor  = "doctor"
	PrefixPatient = "patient"
	PrefixVisit   = "visit"
	PrefixFile    = "file"
	PrefixHistory = "history"
)

// New returns a fresh id with the given prefix.
func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
