package leveling

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	maxMinutes       = math.MaxInt32
)

// ParseNumber parses a decimal number. Surrounding whitespace is ignored and a comma is accepted as the decimal
// separator. Non-finite values are rejected.
func ParseNumber(raw string) (float64, bool) {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTime parses "MM:SS" into seconds. Both parts must be non-negative integers; seconds above 59 are accepted.
func ParseTime(raw string) (float64, bool) {
	minutesPart, secondsPart, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found || strings.Contains(secondsPart, ":") {
		return 0, false
	}
	minutes, ok := parseNonNegativeInt(minutesPart)
	if !ok || minutes > maxMinutes {
		return 0, false
	}
	seconds, ok := parseNonNegativeInt(secondsPart)
	if !ok {
		return 0, false
	}
	return float64(minutes)*secondsPerMinute + float64(seconds), true
}

// parseNonNegativeInt accepts only ASCII digits, so whitespace around the colon of a time is rejected.
func parseNonNegativeInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatTime renders seconds as "MM:SS", rounding to the nearest second. Minutes are not capped at 59.
// Negative input is clamped to zero.
func FormatTime(seconds float64) string {
	total := int(math.Round(math.Max(seconds, 0)))
	return fmt.Sprintf("%02d:%02d", total/secondsPerMinute, total%secondsPerMinute)
}

// FormatValue renders a converted scalar for display in the unit of kind.
func FormatValue(value float64, kind ValueKind) string {
	if kind == KindTime {
		return FormatTime(value)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Convert turns a raw entry value into a comparable scalar.
//
// Time values must be "MM:SS" and convert to seconds. Relative weight values are divided by bodyWeight, which must
// be present and positive, and a ratio that overflows is rejected. Every other kind is parsed as a number. ok is false when the value cannot be classified.
func Convert(raw string, kind ValueKind, bodyWeight *float64) (value float64, ok bool) {
	switch kind {
	case KindTime:
		return ParseTime(raw)
	case KindWeightRelative:
		if bodyWeight == nil || !(*bodyWeight > 0) || math.IsInf(*bodyWeight, 0) {
			return 0, false
		}
		weight, ok := ParseNumber(raw)
		if !ok {
			return 0, false
		}
		ratio := weight / *bodyWeight
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			return 0, false
		}
		return ratio, true
	default:
		return ParseNumber(raw)
	}
}

// convertThreshold converts a benchmark threshold into the scalar space of kind. Time thresholds are "MM:SS" or a
// bare number of seconds. Relative weight thresholds are ratios and are not divided by any body weight.
func convertThreshold(raw string, kind ValueKind) (float64, bool) {
	if kind != KindTime {
		return ParseNumber(raw)
	}
	if strings.Contains(raw, ":") {
		return ParseTime(raw)
	}
	seconds, ok := ParseNumber(raw)
	if !ok || seconds < 0 {
		return 0, false
	}
	return seconds, true
}

// RelativeStrength is the derived relative strength stored with a relative weight entry: the lifted weight divided
// by body weight rounded to two decimals. It returns nil when it cannot be computed.
func RelativeStrength(raw string, bodyWeight *float64) *float64 {
	ratio, ok := Convert(raw, KindWeightRelative, bodyWeight)
	if !ok {
		return nil
	}
	rounded := math.Round(ratio*100) / 100 //nolint:mnd // two decimals
	return &rounded
}
