package analysis

import (
	"regexp"
	"strconv"
	"strings"

	statex "github.com/pharmesol/pharmline/agent/state"
)

// Extraction patterns are ordered by priority; the first match wins and
// lower-priority patterns are not evaluated for that entity kind.
var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	pharmacyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)calling from ([^,.!?]+)`),
		regexp.MustCompile(`(?i)i'?m from ([^,.!?]+)`),
		regexp.MustCompile(`(?i)at ([^,.!?]+pharmacy)`),
		regexp.MustCompile(`(?i)([^,.!?]*pharmacy[^,.!?]*)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bin ([^,.!?]+,\s*[A-Z]{2})\b`),
		regexp.MustCompile(`(?i)\blocated in ([^,.!?]+)`),
		regexp.MustCompile(`(?i)\bfrom ([^,.!?]+,\s*[A-Z]{2})\b`),
	}

	rxVolumePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([\d,]+)\s*prescriptions`),
		regexp.MustCompile(`(?i)([\d,]+)\s*rx\b`),
		regexp.MustCompile(`(?i)volume\D{0,20}([\d,]+)`),
		regexp.MustCompile(`(?i)fill\D{0,20}([\d,]+)`),
	}

	timePreferences = []string{
		"tomorrow morning",
		"tomorrow afternoon",
		"tomorrow",
		"this afternoon",
		"this morning",
		"next week",
		"monday",
		"tuesday",
		"wednesday",
		"thursday",
		"friday",
	}
)

// ExtractEntities parses one message into the fixed entity set. It is a
// pure function of the text, never fails, and leaves unmatched kinds at
// their zero value.
func ExtractEntities(message string) statex.Entities {
	var entities statex.Entities
	if strings.TrimSpace(message) == "" {
		return entities
	}

	entities.Email = emailPattern.FindString(message)
	entities.PharmacyName = firstCapture(pharmacyNamePatterns, message)
	entities.Location = firstCapture(locationPatterns, message)
	entities.RxVolume = extractRxVolume(message)
	entities.PreferredTime = extractTimePreference(message)
	return entities
}

func firstCapture(patterns []*regexp.Regexp, message string) string {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		if captured := trimFragment(m[1]); captured != "" {
			return captured
		}
	}
	return ""
}

// extractRxVolume finds the first integer adjacent to a volume keyword,
// with thousands-separator commas stripped. Non-numeric matches are
// skipped, not propagated.
func extractRxVolume(message string) *int {
	for _, pat := range rxVolumePatterns {
		m := pat.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		volume, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		return &volume
	}
	return nil
}

func extractTimePreference(message string) string {
	lower := strings.ToLower(message)
	for _, pref := range timePreferences {
		if strings.Contains(lower, pref) {
			return pref
		}
	}
	return ""
}

func trimFragment(s string) string {
	return strings.Trim(s, " \t\n.,!?;:'\"")
}
