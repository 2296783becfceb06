package triage

import (
	"github.com/healthsync-ai/scheduler/internal/compliance"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Assessment is the combined outcome of one triage pass.
type Assessment struct {
	RedFlag  RedFlag  `json:"red_flag"`
	Severity Result   `json:"severity"`
	Action   Action   `json:"action"`
	Message  string   `json:"message"`
	Tips     []string `json:"self_care_tips,omitempty"`
}

// Service runs the full triage pipeline. The red-flag detector always runs
// first and, when triggered, overrides the classifier's routing; both always
// run so the severity score is available for waitlist prioritization even on
// emergencies.
type Service struct {
	redFlags   *RedFlagDetector
	classifier *Classifier
	disclaimer *compliance.Disclaimer
	logger     *logging.Logger
}

// NewService creates a triage service.
func NewService(disclaimer *compliance.Disclaimer, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		redFlags:   NewRedFlagDetector(),
		classifier: NewClassifier(),
		disclaimer: disclaimer,
		logger:     logger.Component("triage"),
	}
}

// Assess triages one symptom description.
func (s *Service) Assess(text string) Assessment {
	flag := s.redFlags.Check(text)
	severity := s.classifier.Classify(text)

	a := Assessment{
		RedFlag:  flag,
		Severity: severity,
		Action:   severity.Action,
		Message:  severity.Message,
	}
	if flag.Triggered {
		a.Action = ActionEmergency
		a.Message = flag.EmergencyMessage
	} else if a.Action == ActionSelfCare {
		a.Tips = SelfCareTips(text)
	}
	a.Message = s.disclaimer.Apply(a.Message)

	s.logger.Info("symptoms assessed",
		"score", severity.Score,
		"level", severity.Level,
		"action", a.Action,
		"red_flag", flag.Triggered,
	)
	return a
}
