package triage

import "testing"

func TestRedFlagCheck(t *testing.T) {
	d := NewRedFlagDetector()

	tests := []struct {
		name        string
		text        string
		wantTrigger bool
		wantPhrase  string
	}{
		{"cant breathe", "help, I can't breathe", true, "can't breathe"},
		{"choking", "my son is CHOKING", true, "choking"},
		{"overdose", "possible overdose on sleeping pills", true, "overdose"},
		{"mild complaint", "runny nose and a cough", false, ""},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Check(tt.text)
			if got.Triggered != tt.wantTrigger {
				t.Fatalf("Triggered = %v, want %v", got.Triggered, tt.wantTrigger)
			}
			if got.MatchedPhrase != tt.wantPhrase {
				t.Errorf("MatchedPhrase = %q, want %q", got.MatchedPhrase, tt.wantPhrase)
			}
			if tt.wantTrigger && got.EmergencyMessage == "" {
				t.Error("triggered flag carries no emergency message")
			}
		})
	}
}

func TestRedFlagTablesAreIndependent(t *testing.T) {
	// "severe burns" routes to emergency via red flags even though the
	// severity table has no entry for it.
	d := NewRedFlagDetector()
	c := NewClassifier()

	const text = "severe burns on both hands"
	if !d.Check(text).Triggered {
		t.Fatal("red flag not triggered")
	}
	if got := c.Classify(text); got.Action == ActionEmergency {
		t.Fatalf("classifier alone escalated (score %d); red-flag override would be untestable", got.Score)
	}
}
