package scheduling

import (
	"errors"
	"time"

	"github.com/healthsync-ai/scheduler/internal/triage"
)

// Appointment statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking channels.
const (
	ViaVoice    = "voice"
	ViaManual   = "manual"
	ViaWaitlist = "waitlist"
	ViaOverride = "override"
)

var (
	ErrEmptyPatient        = errors.New("scheduling: patient name required")
	ErrAppointmentNotFound = errors.New("scheduling: appointment not found")
)

// Appointment is a confirmed booking.
type Appointment struct {
	ID          string       `json:"id"`
	PatientName string       `json:"patient_name"`
	Specialty   string       `json:"specialty"`
	Date        string       `json:"date"`
	Notes       string       `json:"notes,omitempty"`
	Severity    triage.Level `json:"severity,omitempty"`
	Status      string       `json:"status"`
	BookedVia   string       `json:"booked_via"`
	BookedAt    time.Time    `json:"booked_at"`
}
