package triage

import "strings"

// selfCareTips maps symptom keywords to home-care guidance read out by the
// voice agent when triage routes to self-care.
var selfCareTips = map[string][]string{
	"cold":     {"Rest and stay hydrated", "Warm fluids like ginger tea", "OTC cold medicine if needed"},
	"cough":    {"Honey and warm water", "Steam inhalation", "Rest your voice"},
	"headache": {"Drink water", "Rest in a quiet dark room", "OTC pain reliever if needed"},
	"fatigue":  {"Get 7-8 hours of sleep", "Light exercise", "Balanced nutrition"},
}

// tipOrder fixes iteration order so output is deterministic.
var tipOrder = []string{"cold", "cough", "headache", "fatigue"}

var fallbackTips = []string{
	"Rest and stay hydrated",
	"Monitor your symptoms closely",
	"Seek medical advice if symptoms worsen",
}

const maxTips = 5

// SelfCareTips collects home-care guidance matching the symptom text,
// deduplicated and capped. Unmatched input gets the generic fallback.
func SelfCareTips(text string) []string {
	normalized := normalize(text)

	var tips []string
	seen := make(map[string]bool)
	for _, keyword := range tipOrder {
		if !strings.Contains(normalized, keyword) {
			continue
		}
		for _, tip := range selfCareTips[keyword] {
			if !seen[tip] {
				seen[tip] = true
				tips = append(tips, tip)
			}
		}
	}
	if len(tips) == 0 {
		return append([]string(nil), fallbackTips...)
	}
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
