// Package followup records post-visit symptom check-ins and classifies the
// recovery trend so worsening patients get flagged for re-booking.
package followup

import (
	"errors"
	"strings"
	"time"
)

// Trend buckets one check-in relative to the prior visit.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

var (
	ErrEmptyPatient     = errors.New("followup: patient name is required")
	ErrEmptySymptoms    = errors.New("followup: check-in text is required")
	ErrEmptyAppointment = errors.New("followup: appointment id is required")
)

// FollowUp is one recorded check-in.
type FollowUp struct {
	ID             string    `json:"id"`
	AppointmentID  string    `json:"appointment_id"`
	PatientName    string    `json:"patient_name"`
	CheckInDate    string    `json:"check_in_date"`
	Symptoms       string    `json:"symptoms"`
	Trend          Trend     `json:"trend"`
	Recommendation string    `json:"recommendation,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Improving wins ties: a patient saying "bad week but feeling better" is
// reporting recovery.
var (
	improvingWords = []string{"better", "improving", "fine", "good", "well", "recovered"}
	worseningWords = []string{"worse", "worsening", "bad", "terrible", "more pain", "severe"}
)

const worseningRecommendation = "Your symptoms appear to be worsening. We recommend booking a follow-up consultation soon."

// ClassifyTrend reads a free-text check-in and reports the recovery trend.
// Matching is case-insensitive substring containment; text matching neither
// wordlist reads as stable.
func ClassifyTrend(text string) Trend {
	lower := strings.ToLower(text)
	for _, w := range improvingWords {
		if strings.Contains(lower, w) {
			return TrendImproving
		}
	}
	for _, w := range worseningWords {
		if strings.Contains(lower, w) {
			return TrendWorsening
		}
	}
	return TrendStable
}
