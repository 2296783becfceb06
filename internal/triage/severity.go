// Package triage turns free-text symptom descriptions from the voice agent
// into routing decisions: emergency escalation, appointment booking, or
// self-care guidance.
package triage

import (
	"strings"
)

// Level buckets a severity score.
type Level string

// Action is the recommended routing for a severity level.
type Action string

const (
	LevelMild     Level = "mild"
	LevelModerate Level = "moderate"
	LevelSevere   Level = "severe"

	ActionSelfCare  Action = "self_care"
	ActionBook      Action = "book_appointment"
	ActionEmergency Action = "emergency"
)

// Result is the outcome of classifying one symptom description.
type Result struct {
	Level   Level  `json:"level"`
	Score   int    `json:"score"`
	Action  Action `json:"action"`
	Message string `json:"message"`
}

// severityScores maps symptom phrases to severity points. Scoring takes the
// maximum matched value, never a sum, so a pile of mild symptoms cannot read
// as severe. Phrase order does not affect the result.
var severityScores = map[string]int{
	// Severe (8-10)
	"chest pain":            10,
	"heart attack":          10,
	"stroke":                10,
	"unconscious":           10,
	"severe bleeding":       10,
	"can't breathe":         10,
	"loss of consciousness": 10,
	"anaphylaxis":           10,
	"difficulty breathing":  9,
	"shortness of breath":   9,
	"seizure":               9,
	"paralysis":             9,
	"severe allergic":       9,

	// Moderate (4-7)
	"fainting":        7,
	"blood in stool":  7,
	"chest tightness": 7,
	"high fever":      6,
	"severe headache": 6,
	"blood in urine":  6,
	"palpitations":    6,
	"jaundice":        6,
	"vision problems": 6,
	"vomiting":        5,
	"persistent pain": 5,
	"infection":       5,
	"dizziness":       5,
	"dehydration":     5,
	"migraine":        5,
	"abdominal pain":  5,
	"numbness":        5,
	"fever":           4,
	"swelling":        4,
	"rash":            4,

	// Mild (1-3)
	"stomach ache":  3,
	"nausea":        3,
	"back pain":     3,
	"cold":          2,
	"cough":         2,
	"sore throat":   2,
	"mild headache": 2,
	"fatigue":       2,
	"tiredness":     2,
	"runny nose":    1,
	"sneeze":        1,
	"minor cut":     1,
	"bruise":        1,
}

// Severity-to-routing thresholds.
const (
	severeThreshold   = 8
	moderateThreshold = 4
)

const (
	msgSevere   = "Emergency detected. Please seek immediate medical attention or call emergency services."
	msgModerate = "Your symptoms suggest you should consult a doctor. We can book an appointment for you."
	msgMild     = "Your symptoms appear mild. Self-care at home should help; contact us if anything worsens."
)

// Classifier scores symptom text against a fixed phrase table. It is pure:
// the same input always produces the same result.
type Classifier struct {
	scores map[string]int
}

// NewClassifier creates a classifier with the standard phrase table.
func NewClassifier() *Classifier {
	return &Classifier{scores: severityScores}
}

// Classify scores free-text symptoms. Matching is case-insensitive substring
// containment after whitespace/comma normalization; an input matching no
// phrase scores 0 and routes to self-care.
func (c *Classifier) Classify(text string) Result {
	normalized := normalize(text)

	score := 0
	for phrase, points := range c.scores {
		if strings.Contains(normalized, phrase) && points > score {
			score = points
		}
	}

	switch {
	case score >= severeThreshold:
		return Result{Level: LevelSevere, Score: score, Action: ActionEmergency, Message: msgSevere}
	case score >= moderateThreshold:
		return Result{Level: LevelModerate, Score: score, Action: ActionBook, Message: msgModerate}
	default:
		return Result{Level: LevelMild, Score: score, Action: ActionSelfCare, Message: msgMild}
	}
}

// normalize lowercases and collapses whitespace and commas to single spaces
// so multi-word phrases match regardless of how the transcript was punctuated.
func normalize(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return strings.Join(fields, " ")
}
