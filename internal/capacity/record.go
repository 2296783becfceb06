package capacity

import (
	"errors"
	"fmt"
)

// Validation errors surfaced to the API layer.
var (
	ErrEmptySpecialty = errors.New("capacity: specialty required")
	ErrInvalidDate    = errors.New("capacity: date must be YYYY-MM-DD")
)

// Policy is the booking policy applied to lazily-created records.
type Policy struct {
	MaxPerDay       int
	EmergencyBuffer int
}

// DefaultPolicy mirrors the clinic's standing configuration: 20 slots per
// specialty per day with 3 held back for same-day emergencies.
func DefaultPolicy() Policy {
	return Policy{MaxPerDay: 20, EmergencyBuffer: 3}
}

// Validate rejects non-positive capacity and buffers that would leave no
// bookable slots.
func (p Policy) Validate() error {
	if p.MaxPerDay <= 0 {
		return fmt.Errorf("capacity: max per day must be positive, got %d", p.MaxPerDay)
	}
	if p.EmergencyBuffer < 0 || p.EmergencyBuffer >= p.MaxPerDay {
		return fmt.Errorf("capacity: emergency buffer %d outside [0, %d)", p.EmergencyBuffer, p.MaxPerDay)
	}
	return nil
}

// Record tracks bookings for one (specialty, day) pair.
type Record struct {
	Specialty       string `json:"specialty"`
	Date            string `json:"date"`
	MaxPerDay       int    `json:"max_per_day"`
	EmergencyBuffer int    `json:"emergency_buffer"`
	Booked          int    `json:"booked"`
}

// bookableSlots is the normal-booking ceiling; the emergency buffer sits
// above it and is only reachable through administrative overrides.
func (r Record) bookableSlots() int {
	return r.MaxPerDay - r.EmergencyBuffer
}

// Availability summarizes a record for callers deciding whether to book.
type Availability struct {
	Booked    int  `json:"booked"`
	Available int  `json:"available"`
	IsFull    bool `json:"is_full"`
}

func (r Record) availability() Availability {
	available := r.bookableSlots() - r.Booked
	if available < 0 {
		available = 0
	}
	return Availability{
		Booked:    r.Booked,
		Available: available,
		IsFull:    available == 0,
	}
}
