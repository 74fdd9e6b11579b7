// Package money isolates the lenient parsing of loosely-formatted
// currency strings. Booking amounts arrive as "15000", "₹15,000" or
// "15,000.50" interchangeably, so every reader goes through ParseAmount
// instead of strconv.
package money

import (
	"strconv"
	"strings"
)

// ParseAmount coerces a loosely-formatted currency string to a number.
// Every rune except digits, dot and minus is stripped before parsing.
// Values that still fail to parse contribute zero.
func ParseAmount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders an amount with comma thousand separators, dropping
// the fraction when it is zero. Used by the report renderers.
func Format(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
