package waitlist

import (
	"errors"
	"time"
)

// Validation errors surfaced to the API layer.
var (
	ErrEmptyPatient   = errors.New("waitlist: patient name required")
	ErrEmptySpecialty = errors.New("waitlist: specialty required")
	ErrInvalidDate    = errors.New("waitlist: preferred date must be YYYY-MM-DD")
	ErrInvalidScore   = errors.New("waitlist: severity score must be between 1 and 10")
)

// Entry is one deferred booking request. Nothing stops the same patient from
// registering twice for the same specialty and day: re-registration is
// allowed and simply queues behind the earlier entry.
type Entry struct {
	ID            string    `json:"id"`
	PatientName   string    `json:"patient_name"`
	Specialty     string    `json:"specialty"`
	PreferredDate string    `json:"preferred_date"`
	SeverityScore int       `json:"severity_score"`
	CreatedAt     time.Time `json:"created_at"`
	Notified      bool      `json:"notified"`
}
