package intake

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Per-step validators and normalizers. All of them are total over string
// inputs: invalid input comes back as ok=false plus a human-readable
// re-prompt, never as an error or panic.

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// NormalizePhone extracts the digits from raw and returns exactly 10 of
// them, stripping a leading US country code. Anything else returns "".
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10:
		return d
	case len(d) == 11 && d[0] == '1':
		return d[1:]
	default:
		return ""
	}
}

// FormatPhone renders 10 normalized digits as (AAA) BBB-CCCC for display.
// Storage always keeps the bare digits.
func FormatPhone(digits string) string {
	if len(digits) != 10 {
		return digits
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// LooksLikeName accepts short free text that plausibly is a person's name:
// at least two characters, at least one letter, at most four words.
func LooksLikeName(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 || !containsLetter(t) {
		return false
	}
	return len(strings.Fields(t)) <= 4
}

// IsZip reports whether s is a 5-digit zip, optionally with a +4 suffix.
func IsZip(s string) bool {
	return zipPattern.MatchString(strings.TrimSpace(s))
}

func containsLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}

// ValidateName validates the answer to the name step.
func ValidateName(raw string) (string, bool, string) {
	t := strings.TrimSpace(raw)
	if !LooksLikeName(t) {
		return "", false, "What name should we use?"
	}
	return t, true, ""
}

// ValidateIssue validates the answer to the issue step. An empty answer is
// accepted when photos arrived in the same turn: the issue is then
// synthesized from the attachment.
func ValidateIssue(raw string, photosThisTurn int) (string, bool, string) {
	t := strings.TrimSpace(raw)
	if t == "" {
		if photosThisTurn > 0 {
			return "Shared via photo", true, ""
		}
		return "", false, "Tell me what you need help with (one sentence is fine)."
	}
	return t, true, ""
}

// ValidateLocation accepts a 5-digit zip (optionally +4) or any text
// containing a letter as a city name. Either form is stored verbatim.
func ValidateLocation(raw string) (string, bool, string) {
	t := strings.TrimSpace(raw)
	if IsZip(t) {
		return t, true, ""
	}
	if containsLetter(t) && len(t) >= 2 {
		return t, true, ""
	}
	return "", false, "Please enter a zip code (98004) or city (Issaquah)."
}

// ValidateUrgency canonicalizes free text by case-insensitive substring
// match, in priority order. Text with no keyword match is kept verbatim as
// the Other case.
func ValidateUrgency(raw string) (Urgency, bool, string) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return Urgency{}, false, "Is it today, this week, or flexible?"
	}
	lower := strings.ToLower(t)
	switch {
	case strings.Contains(lower, "today"):
		return Urgency{Level: UrgencyToday}, true, ""
	case strings.Contains(lower, "week"):
		return Urgency{Level: UrgencyThisWeek}, true, ""
	case strings.Contains(lower, "asap"):
		return Urgency{Level: UrgencyASAP}, true, ""
	case strings.Contains(lower, "flex"), strings.Contains(lower, "any"):
		return Urgency{Level: UrgencyFlexible}, true, ""
	default:
		return Urgency{Level: UrgencyOther, Raw: t}, true, ""
	}
}

// ValidatePhone validates and normalizes the answer to the phone step.
func ValidatePhone(raw string) (string, bool, string) {
	normalized := NormalizePhone(raw)
	if normalized == "" {
		return "", false, "Please enter a valid 10-digit phone (example: 425-555-1234)."
	}
	return normalized, true, ""
}
