// Package parse converts raw spreadsheet rows into canonical typed records,
// tolerating garbled cells. Anomalies become warnings, never errors: one bad
// cell must not abort a batch.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// months maps lower-case Spanish month names to their number. Both spellings
// of September appear in the source sheets.
var months = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Date normalizes a raw date cell to ISO "YYYY-MM-DD". Recognized inputs:
//
//   - ISO "YYYY-MM-DD" with an optional "THH:MM:SS" suffix
//   - numeric "DD/MM/YYYY" or "DD-MM-YYYY"
//   - long-form Spanish "<weekday,> DD de <month> de YYYY"
//
// Anything else yields "".
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}

	for _, layout := range []string{"02/01/2006", "02-01-2006", "2/1/2006", "2-1-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return longFormDate(s)
}

// longFormDate parses "<weekday,> DD de <month> de YYYY" using the Spanish
// month table. The weekday, when present, is ignored.
func longFormDate(s string) string {
	s = strings.ToLower(s)
	if i := strings.Index(s, ","); i >= 0 {
		s = s[i+1:]
	}

	fields := strings.Fields(s)
	// expect: DD de <month> de YYYY
	if len(fields) != 5 || fields[1] != "de" || fields[3] != "de" {
		return ""
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return ""
	}
	month, ok := months[fields[2]]
	if !ok {
		return ""
	}
	year, err := strconv.Atoi(fields[4])
	if err != nil || len(fields[4]) != 4 {
		return ""
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "" // e.g. "31 de febrero"
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
