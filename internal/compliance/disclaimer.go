// Package compliance keeps the medical-legal guardrails on assistant output.
package compliance

import (
	"fmt"
	"strings"
)

// DisclaimerLevel represents the verbosity of the disclaimer.
type DisclaimerLevel string

const (
	// DisclaimerShort is the shortest disclaimer.
	DisclaimerShort DisclaimerLevel = "short"
	// DisclaimerMedium is a moderate disclaimer.
	DisclaimerMedium DisclaimerLevel = "medium"
	// DisclaimerFull is the most comprehensive disclaimer.
	DisclaimerFull DisclaimerLevel = "full"
)

const (
	disclaimerShortText = "Auto-assistant. Not medical advice."

	disclaimerMediumText = "This is an automated assistant. For medical advice, please consult your provider."

	disclaimerFullText = "This is an automated triage and scheduling assistant. The information provided is general in nature and not a substitute for professional medical advice. Please consult with a licensed healthcare provider for medical guidance."
)

// Disclaimer appends the configured medical disclaimer to outbound messages.
type Disclaimer struct {
	level      DisclaimerLevel
	customText string
	enabled    bool
}

// NewDisclaimer creates a disclaimer at the given level. Unknown levels fall
// back to medium.
func NewDisclaimer(level DisclaimerLevel) *Disclaimer {
	return &Disclaimer{level: level, enabled: true}
}

// NewCustomDisclaimer uses clinic-supplied text instead of a template.
func NewCustomDisclaimer(text string) *Disclaimer {
	return &Disclaimer{customText: text, enabled: text != ""}
}

// Text returns the disclaimer body.
func (d *Disclaimer) Text() string {
	if d.customText != "" {
		return d.customText
	}
	switch d.level {
	case DisclaimerShort:
		return disclaimerShortText
	case DisclaimerFull:
		return disclaimerFullText
	default:
		return disclaimerMediumText
	}
}

// Apply appends the disclaimer to message unless it is already present.
func (d *Disclaimer) Apply(message string) string {
	if d == nil || !d.enabled {
		return message
	}
	text := d.Text()
	if strings.Contains(message, text) {
		return message
	}
	return fmt.Sprintf("%s\n\n%s", strings.TrimSpace(message), text)
}
