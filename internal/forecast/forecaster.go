// Package forecast projects near-future patient load from the capacity
// ledger plus a fixed weekly demand curve, for the staffing dashboard. It is
// a coarse heuristic, not a statistical model, and never drives clinical
// decisions.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/healthsync-ai/scheduler/internal/dates"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Risk is the staffing-alert tier for a forecast day.
type Risk string

const (
	RiskLow      Risk = "low"
	RiskNormal   Risk = "normal"
	RiskHigh     Risk = "high"
	RiskCritical Risk = "critical"
)

// weeklyBase encodes the standing demand curve, indexed by time.Weekday
// (0 = Sunday): Monday/Tuesday peak, midweek tapers, weekends trough. It is
// fixed configuration, not derived from history.
var weeklyBase = [7]int{3, 9, 7, 4, 6, 5, 2}

// Risk tier thresholds on expected daily patients.
const (
	criticalThreshold = 18
	highThreshold     = 14
	normalThreshold   = 8
)

// patientsPerDoctor sizes the staffing recommendation.
const patientsPerDoctor = 20

// teleconsultShare is the fraction of expected load worth steering to
// teleconsultation on busy days.
const teleconsultShare = 0.3

// Prediction is one day's projected load. Predictions are derived values:
// recomputed per call, never persisted.
type Prediction struct {
	Date               string `json:"date"`
	Expected           int    `json:"expected"`
	Risk               Risk   `json:"risk"`
	RecommendedDoctors int    `json:"recommended_doctors"`
	TeleconsultSlots   int    `json:"teleconsult_slots"`
}

// Summary condenses a forecast window for the dashboard headline.
type Summary struct {
	BusiestDate  string `json:"busiest_date"`
	PeakExpected int    `json:"peak_expected"`
	AverageLoad  int    `json:"average_load"`
	StaffingNote string `json:"staffing_note"`
}

// bookedReader is the slice of the capacity ledger the forecaster reads.
type bookedReader interface {
	BookedOn(ctx context.Context, date string) (int, error)
}

// Forecaster projects expected patient volume per day.
type Forecaster struct {
	ledger bookedReader
	logger *logging.Logger
	now    func() time.Time
}

// New creates a forecaster over the given ledger.
func New(ledger bookedReader, logger *logging.Logger) *Forecaster {
	if logger == nil {
		logger = logging.Default()
	}
	return &Forecaster{ledger: ledger, logger: logger.Component("forecast"), now: time.Now}
}

// Predict returns one prediction per day from today (offset 0) through
// daysAhead-1, in date order:
//
//	expected = weeklyBase[weekday]*2 + booked-across-all-specialties
func (f *Forecaster) Predict(ctx context.Context, daysAhead int) ([]Prediction, error) {
	if daysAhead <= 0 {
		return nil, fmt.Errorf("forecast: days ahead must be positive, got %d", daysAhead)
	}

	today := f.now()
	predictions := make([]Prediction, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		day := today.AddDate(0, 0, i)
		date := dates.Format(day)

		booked, err := f.ledger.BookedOn(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("forecast: read bookings for %s: %w", date, err)
		}

		expected := weeklyBase[int(day.Weekday())]*2 + booked
		predictions = append(predictions, Prediction{
			Date:               date,
			Expected:           expected,
			Risk:               riskFor(expected),
			RecommendedDoctors: recommendedDoctors(expected),
			TeleconsultSlots:   int(math.Round(float64(expected) * teleconsultShare)),
		})
	}
	return predictions, nil
}

// Summarize condenses a Predict window into the dashboard headline.
func (f *Forecaster) Summarize(ctx context.Context, daysAhead int) (Summary, error) {
	predictions, err := f.Predict(ctx, daysAhead)
	if err != nil {
		return Summary{}, err
	}

	busiest := predictions[0]
	total := 0
	for _, p := range predictions {
		total += p.Expected
		if p.Expected > busiest.Expected {
			busiest = p
		}
	}
	return Summary{
		BusiestDate:  busiest.Date,
		PeakExpected: busiest.Expected,
		AverageLoad:  int(math.Round(float64(total) / float64(len(predictions)))),
		StaffingNote: fmt.Sprintf(
			"Busiest day predicted: %s with ~%d patients. Ensure %d doctors and prioritize teleconsult slots to manage flow.",
			busiest.Date, busiest.Expected, busiest.RecommendedDoctors,
		),
	}, nil
}

func riskFor(expected int) Risk {
	switch {
	case expected >= criticalThreshold:
		return RiskCritical
	case expected >= highThreshold:
		return RiskHigh
	case expected >= normalThreshold:
		return RiskNormal
	default:
		return RiskLow
	}
}

func recommendedDoctors(expected int) int {
	if expected <= 0 {
		return 1
	}
	return (expected + patientsPerDoctor - 1) / patientsPerDoctor
}
