// pkg/clean/sanitize.go
package clean

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{12,19}$`)
	allDigitsPattern  = regexp.MustCompile(`^[0-9]+$`)
	weightPattern     = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*([A-Za-z]*)\s*$`)
)

// CleanPhoneNumber canonicalizes a phone number: every character except
// digits and the extension marker 'x' is removed, one leading '0' or
// '+' is stripped, then the extension ('x' and everything after it) is
// cut off.
func CleanPhoneNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == 'x' {
			b.WriteRune(r)
		}
	}
	out := b.String()

	if len(out) > 0 && (out[0] == '0' || out[0] == '+') {
		out = out[1:]
	}

	if i := strings.IndexByte(out, 'x'); i >= 0 {
		out = out[:i]
	}
	return out
}

// ValidCardNumber reports whether a card number is all-digit with
// length between 12 and 19 inclusive. No coercion or truncation: a
// value that fails this check rejects its whole row.
func ValidCardNumber(s string) bool {
	return cardNumberPattern.MatchString(s)
}

// StripCardSeparators removes thousands-separator commas from a card
// number's text rendering.
func StripCardSeparators(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// ConvertWeight parses a "<numeric><optional-space><unit>" weight token
// and returns its value in kilograms rounded to 4 decimal places.
// Units g and ml divide by 1000 (1 ml is treated as 1 g by mass); any
// other unit, or no unit, is assumed to already be kilograms.
func ConvertWeight(s string) (float64, bool) {
	m := weightPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "g", "ml":
		v /= 1000
	}
	return math.Round(v*10000) / 10000, true
}

// FlattenAddress replaces embedded newlines with single spaces.
func FlattenAddress(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// RepairContinent removes every occurrence of the doubled-"ee" typo the
// store source injects into continent names ("eeEurope" -> "Europe").
// This is a fixed-string repair for one known upstream quirk, not
// general text cleaning.
func RepairContinent(s string) string {
	return strings.ReplaceAll(s, "ee", "")
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isAllDigits reports whether a string is non-empty and purely numeric.
func isAllDigits(s string) bool {
	return allDigitsPattern.MatchString(s)
}
