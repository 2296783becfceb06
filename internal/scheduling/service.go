package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/observability/metrics"
	"github.com/healthsync-ai/scheduler/internal/triage"
	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

var schedulingTracer = otel.Tracer("healthsync.internal.scheduling")

// Booking outcomes.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeWaitlisted = "waitlisted"
	OutcomeEmergency  = "emergency"
)

// BookingRequest is one booking attempt from the voice agent or the manual
// booking form.
type BookingRequest struct {
	PatientName string `json:"patient_name"`
	Specialty   string `json:"specialty"`
	Date        string `json:"date"`
	Symptoms    string `json:"symptoms,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Via         string `json:"via,omitempty"`
}

// Outcome reports where a booking request landed.
type Outcome struct {
	Status       string                `json:"status"`
	Assessment   triage.Assessment     `json:"assessment"`
	Appointment  *Appointment          `json:"appointment,omitempty"`
	Waitlisted   *waitlist.Entry       `json:"waitlist_entry,omitempty"`
	QueueRank    int                   `json:"queue_position,omitempty"`
	NextDate     string                `json:"next_available_date,omitempty"`
	NextFound    bool                  `json:"next_available_found"`
	Availability capacity.Availability `json:"availability"`
}

// CancelResult reports a cancellation and any promotion it triggered.
type CancelResult struct {
	Cancelled *Appointment `json:"cancelled"`
	Promoted  *Appointment `json:"promoted,omitempty"`
}

// promotionNotifier tells the front desk about a promoted entry.
type promotionNotifier interface {
	NotifySlotOpened(ctx context.Context, entry waitlist.Entry)
}

// Service routes booking requests: triage first, then the capacity check,
// then either a confirmed appointment or a waitlist entry. It owns the
// appointment table; the ledger and waitlist stay ignorant of each other.
type Service struct {
	ledger   *capacity.Ledger
	waitlist *waitlist.Manager
	triage   *triage.Service
	store    *Store
	notifier promotionNotifier
	metrics  *metrics.SchedulerMetrics
	logger   *logging.Logger

	horizonDays int

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Config wires a scheduling service.
type Config struct {
	Ledger      *capacity.Ledger
	Waitlist    *waitlist.Manager
	Triage      *triage.Service
	Store       *Store
	Notifier    promotionNotifier
	Metrics     *metrics.SchedulerMetrics
	Logger      *logging.Logger
	HorizonDays int
}

// NewService creates the booking orchestrator.
func NewService(cfg Config) *Service {
	if cfg.Ledger == nil || cfg.Waitlist == nil || cfg.Triage == nil || cfg.Store == nil {
		panic("scheduling: ledger, waitlist, triage and store are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = capacity.DefaultHorizonDays
	}
	return &Service{
		ledger:      cfg.Ledger,
		waitlist:    cfg.Waitlist,
		triage:      cfg.Triage,
		store:       cfg.Store,
		notifier:    cfg.Notifier,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.Component("scheduling"),
		horizonDays: cfg.HorizonDays,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// RequestBooking runs the full pipeline for one request. Red-flagged
// symptoms short-circuit to an emergency directive without touching the
// ledger; otherwise the request is confirmed if capacity allows and
// waitlisted if not.
func (s *Service) RequestBooking(ctx context.Context, req BookingRequest) (Outcome, error) {
	ctx, span := schedulingTracer.Start(ctx, "scheduling.request_booking")
	defer span.End()
	span.SetAttributes(
		attribute.String("healthsync.specialty", req.Specialty),
		attribute.String("healthsync.date", req.Date),
	)

	if req.PatientName == "" {
		return Outcome{}, ErrEmptyPatient
	}
	// Reuse the ledger's key validation so one rulebook covers both paths.
	if _, err := s.ledger.Get(ctx, req.Specialty, req.Date); err != nil {
		return Outcome{}, err
	}

	assessment := s.triage.Assess(req.Symptoms)
	s.metrics.ObserveTriage(string(assessment.Action))
	span.SetAttributes(attribute.Int("healthsync.severity_score", assessment.Severity.Score))

	if assessment.RedFlag.Triggered {
		s.logger.Warn("red flag detected, booking redirected to emergency services",
			"matched_phrase", assessment.RedFlag.MatchedPhrase)
		s.metrics.ObserveBooking(OutcomeEmergency)
		return Outcome{Status: OutcomeEmergency, Assessment: assessment}, nil
	}

	// Claiming the slot and checking the ceiling are one atomic step, so two
	// concurrent requests cannot both win the last open slot.
	_, booked, err := s.ledger.TryBook(ctx, req.Specialty, req.Date)
	if err != nil {
		span.RecordError(err)
		return Outcome{}, err
	}

	if booked {
		return s.confirm(ctx, req, assessment)
	}
	return s.deferToWaitlist(ctx, req, assessment)
}

// confirm records the appointment for a slot already claimed on the ledger.
func (s *Service) confirm(ctx context.Context, req BookingRequest, assessment triage.Assessment) (Outcome, error) {
	appt, err := s.createAppointment(ctx, req, assessment.Severity.Level)
	if err != nil {
		// Roll the slot back so the count doesn't drift from the table.
		if _, derr := s.ledger.Decrement(ctx, req.Specialty, req.Date); derr != nil {
			s.logger.Error("rollback decrement failed", "error", derr)
		}
		return Outcome{}, err
	}

	avail, err := s.ledger.Availability(ctx, req.Specialty, req.Date)
	if err != nil {
		return Outcome{}, err
	}

	s.logger.Info("booking confirmed",
		"appointment_id", appt.ID,
		"specialty", req.Specialty,
		"date", req.Date,
		"via", appt.BookedVia,
	)
	s.metrics.ObserveBooking(OutcomeConfirmed)
	return Outcome{
		Status:       OutcomeConfirmed,
		Assessment:   assessment,
		Appointment:  &appt,
		Availability: avail,
	}, nil
}

func (s *Service) deferToWaitlist(ctx context.Context, req BookingRequest, assessment triage.Assessment) (Outcome, error) {
	score := assessment.Severity.Score
	if score < 1 {
		score = 1
	}
	entry, err := s.waitlist.Add(ctx, req.PatientName, req.Specialty, req.Date, score)
	if err != nil {
		return Outcome{}, err
	}
	rank, err := s.waitlist.Position(ctx, entry.ID)
	if err != nil {
		return Outcome{}, err
	}
	s.updateWaitlistDepth(ctx)

	nextDate, found, err := s.ledger.NextAvailableDate(ctx, req.Specialty, req.Date, s.horizonDays)
	if err != nil {
		return Outcome{}, err
	}
	avail, err := s.ledger.Availability(ctx, req.Specialty, req.Date)
	if err != nil {
		return Outcome{}, err
	}

	s.logger.Info("booking waitlisted",
		"entry_id", entry.ID,
		"specialty", req.Specialty,
		"date", req.Date,
		"queue_position", rank,
		"next_available_found", found,
	)
	s.metrics.ObserveBooking(OutcomeWaitlisted)
	return Outcome{
		Status:       OutcomeWaitlisted,
		Assessment:   assessment,
		Waitlisted:   &entry,
		QueueRank:    rank,
		NextDate:     nextDate,
		NextFound:    found,
		Availability: avail,
	}, nil
}

// OverrideBooking books past the normal capacity ceiling into the emergency
// buffer. It is reachable only through the admin surface.
func (s *Service) OverrideBooking(ctx context.Context, req BookingRequest) (Appointment, error) {
	ctx, span := schedulingTracer.Start(ctx, "scheduling.override_booking")
	defer span.End()

	if req.PatientName == "" {
		return Appointment{}, ErrEmptyPatient
	}
	if _, err := s.ledger.Increment(ctx, req.Specialty, req.Date); err != nil {
		span.RecordError(err)
		return Appointment{}, err
	}
	req.Via = ViaOverride
	appt, err := s.createAppointment(ctx, req, "")
	if err != nil {
		if _, derr := s.ledger.Decrement(ctx, req.Specialty, req.Date); derr != nil {
			s.logger.Error("rollback decrement failed", "error", derr)
		}
		return Appointment{}, err
	}
	s.logger.Info("override booking recorded",
		"appointment_id", appt.ID, "specialty", req.Specialty, "date", req.Date)
	s.metrics.ObserveBooking(OutcomeConfirmed)
	return appt, nil
}

// CancelBooking frees the slot and immediately offers it to the waitlist.
// The highest-priority matching entry, if any, is booked into the freed
// slot and the front desk notified.
func (s *Service) CancelBooking(ctx context.Context, appointmentID string) (CancelResult, error) {
	ctx, span := schedulingTracer.Start(ctx, "scheduling.cancel_booking")
	defer span.End()
	span.SetAttributes(attribute.String("healthsync.appointment_id", appointmentID))

	cancelled, alreadyCancelled, err := s.markCancelled(ctx, appointmentID)
	if err != nil {
		return CancelResult{}, err
	}
	if alreadyCancelled {
		return CancelResult{Cancelled: &cancelled}, nil
	}

	if _, err := s.ledger.Decrement(ctx, cancelled.Specialty, cancelled.Date); err != nil {
		return CancelResult{}, err
	}
	s.logger.Info("booking cancelled", "appointment_id", cancelled.ID)
	result := CancelResult{Cancelled: &cancelled}

	entry, ok, err := s.waitlist.Promote(ctx, cancelled.Specialty, cancelled.Date)
	if err != nil {
		return CancelResult{}, err
	}
	if !ok {
		return result, nil
	}

	// The promoted patient takes the freed slot.
	if _, err := s.ledger.Increment(ctx, entry.Specialty, entry.PreferredDate); err != nil {
		return CancelResult{}, err
	}
	promoted, err := s.createAppointment(ctx, BookingRequest{
		PatientName: entry.PatientName,
		Specialty:   entry.Specialty,
		Date:        entry.PreferredDate,
		Via:         ViaWaitlist,
	}, severityLevelForScore(entry.SeverityScore))
	if err != nil {
		return CancelResult{}, err
	}
	result.Promoted = &promoted

	s.metrics.ObservePromotion()
	s.updateWaitlistDepth(ctx)
	if s.notifier != nil {
		s.notifier.NotifySlotOpened(ctx, entry)
	}
	return result, nil
}

// Appointments lists the appointment table, newest first.
func (s *Service) Appointments(ctx context.Context) ([]Appointment, error) {
	appointments, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	// Reverse of insertion order.
	for i, j := 0, len(appointments)-1; i < j; i, j = i+1, j-1 {
		appointments[i], appointments[j] = appointments[j], appointments[i]
	}
	return appointments, nil
}

// Appointment loads one appointment.
func (s *Service) Appointment(ctx context.Context, id string) (Appointment, error) {
	appointments, err := s.store.LoadAll(ctx)
	if err != nil {
		return Appointment{}, err
	}
	for _, a := range appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrAppointmentNotFound
}

// markCancelled flips an appointment to cancelled. The bool reports whether
// it already was, in which case the ledger must not be decremented again.
func (s *Service) markCancelled(ctx context.Context, appointmentID string) (Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.store.LoadAll(ctx)
	if err != nil {
		return Appointment{}, false, err
	}
	for i, a := range appointments {
		if a.ID != appointmentID {
			continue
		}
		if a.Status == StatusCancelled {
			return a, true, nil
		}
		appointments[i].Status = StatusCancelled
		if err := s.store.SaveAll(ctx, appointments); err != nil {
			return Appointment{}, false, err
		}
		return appointments[i], false, nil
	}
	return Appointment{}, false, ErrAppointmentNotFound
}

func (s *Service) createAppointment(ctx context.Context, req BookingRequest, severity triage.Level) (Appointment, error) {
	via := req.Via
	if via == "" {
		via = ViaManual
	}
	appt := Appointment{
		ID:          s.newID(),
		PatientName: req.PatientName,
		Specialty:   req.Specialty,
		Date:        req.Date,
		Notes:       req.Notes,
		Severity:    severity,
		Status:      StatusUpcoming,
		BookedVia:   via,
		BookedAt:    s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.store.LoadAll(ctx)
	if err != nil {
		return Appointment{}, err
	}
	appointments = append(appointments, appt)
	if err := s.store.SaveAll(ctx, appointments); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

func (s *Service) updateWaitlistDepth(ctx context.Context) {
	entries, err := s.waitlist.List(ctx)
	if err != nil {
		return
	}
	s.metrics.SetWaitlistDepth(len(entries))
}

func severityLevelForScore(score int) triage.Level {
	switch {
	case score >= 8:
		return triage.LevelSevere
	case score >= 4:
		return triage.LevelModerate
	default:
		return triage.LevelMild
	}
}
