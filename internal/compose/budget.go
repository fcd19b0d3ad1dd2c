package compose

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The regexes mirror the server's own character counter: every URL bills a
// flat reserved width no matter how long it is, and a remote mention
// @user@domain bills only its local part.
var (
	urlPattern           = regexp.MustCompile(`(?i)https?://\S+`)
	remoteMentionPattern = regexp.MustCompile(`(?i)(^|[^/\w])@([a-z0-9_]+)@[a-z0-9.-]+[a-z0-9]`)
)

// CountableLength is the billed character count of a draft: body with URLs
// collapsed to reservedPerURL placeholder characters and remote mentions
// reduced to their local part, plus the content warning. Counted in Unicode
// codepoints so emoji and combining marks bill correctly.
func CountableLength(body, contentWarning string, reservedPerURL int) int {
	placeholder := strings.Repeat("x", reservedPerURL)
	countable := urlPattern.ReplaceAllString(body, placeholder)
	countable = remoteMentionPattern.ReplaceAllString(countable, "${1}@${2}")
	return utf8.RuneCountInString(countable) + utf8.RuneCountInString(contentWarning)
}

// MeterLevel is a presentational tier, not a hard stop. The server stays
// authoritative on the actual limit.
type MeterLevel string

const (
	MeterHidden  MeterLevel = "hidden" // below half the budget
	MeterOK      MeterLevel = "ok"
	MeterWarning MeterLevel = "warning" // 20 or fewer left
	MeterDanger  MeterLevel = "danger"  // at or over the limit
	MeterExplode MeterLevel = "explode" // 10 or more over
)

type Meter struct {
	Count     int
	Max       int
	Remaining int
	Level     MeterLevel
}

// BudgetMeter derives the visual meter for a given count against the
// instance budget.
func BudgetMeter(count, max int) Meter {
	m := Meter{Count: count, Max: max, Remaining: max - count}
	switch left := m.Remaining; {
	case count <= max/2:
		m.Level = MeterHidden
	case left <= -10:
		m.Level = MeterExplode
	case left <= 0:
		m.Level = MeterDanger
	case left <= 20:
		m.Level = MeterWarning
	default:
		m.Level = MeterOK
	}
	return m
}
