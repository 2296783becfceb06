package triage

import (
	"strings"
	"testing"

	"github.com/healthsync-ai/scheduler/internal/compliance"
)

func TestAssessRedFlagOverridesSeverity(t *testing.T) {
	svc := NewService(nil, nil)

	// "deep wound" is a red flag but not in the severity table, so the
	// classifier alone would route to self-care. The red-flag path must win.
	a := svc.Assess("deep wound from a kitchen accident")
	if !a.RedFlag.Triggered {
		t.Fatal("red flag not triggered")
	}
	if a.Action != ActionEmergency {
		t.Errorf("action = %s, want emergency", a.Action)
	}
	if a.Severity.Action == ActionEmergency {
		t.Error("severity alone escalated; override is not being exercised")
	}
	if a.Message != a.RedFlag.EmergencyMessage {
		t.Errorf("message = %q, want red-flag message", a.Message)
	}
}

func TestAssessBothDetectorsAlwaysRun(t *testing.T) {
	svc := NewService(nil, nil)

	a := svc.Assess("can't breathe and chest pain")
	if !a.RedFlag.Triggered {
		t.Fatal("red flag not triggered")
	}
	// Severity score still computed for waitlist prioritization.
	if a.Severity.Score != 10 {
		t.Errorf("severity score = %d, want 10", a.Severity.Score)
	}
}

func TestAssessSelfCareCarriesTips(t *testing.T) {
	svc := NewService(nil, nil)

	a := svc.Assess("a cold and some tiredness")
	if a.Action != ActionSelfCare {
		t.Fatalf("action = %s", a.Action)
	}
	if len(a.Tips) == 0 {
		t.Error("self-care routing carries no tips")
	}

	booked := svc.Assess("high fever")
	if len(booked.Tips) != 0 {
		t.Error("book_appointment routing should not carry self-care tips")
	}
}

func TestAssessAppliesDisclaimer(t *testing.T) {
	svc := NewService(compliance.NewDisclaimer(compliance.DisclaimerShort), nil)

	a := svc.Assess("mild headache")
	if !strings.Contains(a.Message, "Not medical advice") {
		t.Errorf("disclaimer missing from message: %q", a.Message)
	}
}
