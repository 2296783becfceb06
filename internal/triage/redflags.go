package triage

import (
	"fmt"
	"strings"
)

// redFlagPhrases are unambiguous emergency indicators. The list overlaps the
// severity table but is maintained independently: pruning a phrase from one
// never silently weakens the other.
var redFlagPhrases = []string{
	"chest pain",
	"heart attack",
	"difficulty breathing",
	"can't breathe",
	"shortness of breath",
	"stroke symptoms",
	"loss of consciousness",
	"severe bleeding",
	"signs of heart attack",
	"unconscious",
	"seizure",
	"anaphylaxis",
	"severe allergic reaction",
	"paralysis",
	"not breathing",
	"choking",
	"overdose",
	"poisoning",
	"severe burns",
	"deep wound",
}

// RedFlag is the outcome of the emergency phrase check.
type RedFlag struct {
	Triggered        bool   `json:"triggered"`
	MatchedPhrase    string `json:"matched_phrase,omitempty"`
	EmergencyMessage string `json:"emergency_message,omitempty"`
	NearestERHint    string `json:"nearest_er_hint,omitempty"`
	AmbulanceNumber  string `json:"ambulance_number,omitempty"`
}

// RedFlagDetector checks symptom text against the fixed emergency phrase
// list. It runs before severity classification on every assessment and,
// when triggered, overrides whatever the classifier would decide.
type RedFlagDetector struct {
	phrases []string
}

// NewRedFlagDetector creates a detector with the standard phrase list.
func NewRedFlagDetector() *RedFlagDetector {
	return &RedFlagDetector{phrases: redFlagPhrases}
}

// Check scans text for emergency phrases. The first match wins; which phrase
// matched is reported so the agent can name it back to the caller.
func (d *RedFlagDetector) Check(text string) RedFlag {
	normalized := normalize(text)
	for _, phrase := range d.phrases {
		if strings.Contains(normalized, phrase) {
			return RedFlag{
				Triggered:        true,
				MatchedPhrase:    phrase,
				EmergencyMessage: fmt.Sprintf("Emergency: %q detected. Do not delay, call emergency services immediately.", phrase),
				NearestERHint:    "Search for the nearest emergency room at google.com/maps/search/emergency+room+near+me",
				AmbulanceNumber:  "112 (India) / 911 (US)",
			}
		}
	}
	return RedFlag{}
}
