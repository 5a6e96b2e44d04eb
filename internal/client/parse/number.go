package parse

import (
	"strconv"
	"strings"
	"time"
)

// Number parses a numeric cell accepting both '.' and ',' as the decimal
// separator. Empty or non-numeric input returns fallback.
func Number(raw string, fallback float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// PeriodYear parses a vacation-period year cell. Only an exact 4-digit year
// is accepted; anything else defaults to the current calendar year of now.
func PeriodYear(raw string, now time.Time) int {
	s := strings.TrimSpace(raw)
	if len(s) != 4 {
		return now.Year()
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1000 {
		return now.Year()
	}
	return y
}
