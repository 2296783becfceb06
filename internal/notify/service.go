package notify

import (
	"context"
	"fmt"

	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Service tells the front desk when a waitlisted patient can be booked into
// a freed slot. Patients are reached by phone, so the notice goes to the
// clinic's operations inbox rather than to the patient directly.
type Service struct {
	email         EmailSender
	operatorEmail string
	logger        *logging.Logger
}

// NewService creates a notification service. With no operator inbox
// configured the service degrades to logging only.
func NewService(email EmailSender, operatorEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if email == nil {
		email = NewStubEmailSender(logger)
	}
	return &Service{email: email, operatorEmail: operatorEmail, logger: logger.Component("notify")}
}

// NotifySlotOpened reports a promoted waitlist entry. Delivery failure is
// logged but never fails the promotion: the entry is already off the
// waitlist, and the freed booking must stand.
func (s *Service) NotifySlotOpened(ctx context.Context, entry waitlist.Entry) {
	if s == nil {
		return
	}
	s.logger.Info("waitlist promotion notice",
		"entry_id", entry.ID,
		"patient", entry.PatientName,
		"specialty", entry.Specialty,
		"date", entry.PreferredDate,
	)
	if s.operatorEmail == "" {
		return
	}

	msg := EmailMessage{
		To:      s.operatorEmail,
		ToName:  "Front Desk",
		Subject: fmt.Sprintf("Waitlist promotion: %s on %s", entry.Specialty, entry.PreferredDate),
		Body: fmt.Sprintf(
			"A %s slot on %s opened up and was assigned to %s (severity %d, waiting since %s). Please call the patient to confirm.",
			entry.Specialty, entry.PreferredDate, entry.PatientName, entry.SeverityScore,
			entry.CreatedAt.Format("Jan 2 15:04"),
		),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send promotion notice", "error", err, "entry_id", entry.ID)
	}
}
