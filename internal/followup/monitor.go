package followup

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthsync-ai/scheduler/internal/dates"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Monitor records patient check-ins against past appointments.
type Monitor struct {
	store  *Store
	logger *logging.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewMonitor creates a follow-up monitor.
func NewMonitor(store *Store, logger *logging.Logger) *Monitor {
	if store == nil {
		panic("followup: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Monitor{
		store:  store,
		logger: logger.Component("followup"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CheckIn records one symptom check-in and classifies its trend. Worsening
// check-ins carry a re-booking recommendation for the caller to surface.
func (m *Monitor) CheckIn(ctx context.Context, appointmentID, patientName, symptoms string) (FollowUp, error) {
	if appointmentID == "" {
		return FollowUp{}, ErrEmptyAppointment
	}
	if patientName == "" {
		return FollowUp{}, ErrEmptyPatient
	}
	if symptoms == "" {
		return FollowUp{}, ErrEmptySymptoms
	}

	now := m.now().UTC()
	entry := FollowUp{
		ID:            m.newID(),
		AppointmentID: appointmentID,
		PatientName:   patientName,
		CheckInDate:   dates.Format(now),
		Symptoms:      symptoms,
		Trend:         ClassifyTrend(symptoms),
		CreatedAt:     now,
	}
	if entry.Trend == TrendWorsening {
		entry.Recommendation = worseningRecommendation
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	followUps, err := m.store.LoadAll(ctx)
	if err != nil {
		return FollowUp{}, err
	}
	followUps = append(followUps, entry)
	if err := m.store.SaveAll(ctx, followUps); err != nil {
		return FollowUp{}, err
	}

	m.logger.Info("check-in recorded",
		"followup_id", entry.ID,
		"appointment_id", appointmentID,
		"trend", entry.Trend,
	)
	return entry, nil
}

// ListForAppointment returns check-ins for one appointment, oldest first.
func (m *Monitor) ListForAppointment(ctx context.Context, appointmentID string) ([]FollowUp, error) {
	all, err := m.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []FollowUp
	for _, f := range all {
		if f.AppointmentID == appointmentID {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListForPatient returns check-ins for one patient, oldest first.
func (m *Monitor) ListForPatient(ctx context.Context, patientName string) ([]FollowUp, error) {
	all, err := m.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []FollowUp
	for _, f := range all {
		if f.PatientName == patientName {
			out = append(out, f)
		}
	}
	return out, nil
}
