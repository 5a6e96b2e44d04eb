// Package conflict cross-references a candidate (identity, display name)
// pair against the employee roster and the historical record set to catch
// one rut mapping to two different people. Name comparison is intentionally
// loose (case, accents, spacing) so formatting variance never raises a
// false conflict.
package conflict

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Source tells which dataset the conflicting name was found in.
type Source string

const (
	SourceEmployees Source = "employees"
	SourceRecords   Source = "records"
)

// Conflict reports that canonical identity RUT is already associated with a
// different display name.
type Conflict struct {
	Source       Source
	RUT          string
	ExistingName string
	// RecordID is set when Source is SourceRecords.
	RecordID string
}

// Ignore excludes entities from the scan so that editing an existing entry
// does not conflict with itself.
type Ignore struct {
	EmployeeRUT  string
	EmployeeName string
	RecordID     string
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName case-folds, strips diacritics and collapses whitespace.
// "Juán  Pérez" and "JUAN PEREZ" normalize identically.
func NormalizeName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Find scans employees first, then historical records, for an entry sharing
// canonicalID under a different normalized name. It returns nil when no such
// entry exists. Employee conflicts take priority over record conflicts.
func Find(canonicalID, displayName string, employees []models.Employee, records []models.PermitRecord, ignore Ignore) *Conflict {
	candidate := NormalizeName(displayName)
	ignoreName := NormalizeName(ignore.EmployeeName)

	for _, e := range employees {
		if e.RUT != canonicalID {
			continue
		}
		if ignore.EmployeeRUT != "" && e.RUT == ignore.EmployeeRUT {
			continue
		}
		existing := NormalizeName(e.DisplayName)
		if ignoreName != "" && existing == ignoreName {
			continue
		}
		if existing != candidate {
			return &Conflict{
				Source:       SourceEmployees,
				RUT:          canonicalID,
				ExistingName: e.DisplayName,
			}
		}
	}

	for _, r := range records {
		if r.RUT != canonicalID {
			continue
		}
		if ignore.RecordID != "" && r.ID == ignore.RecordID {
			continue
		}
		if ignore.EmployeeRUT != "" && r.RUT == ignore.EmployeeRUT {
			continue
		}
		existing := NormalizeName(r.DisplayName)
		if ignoreName != "" && existing == ignoreName {
			continue
		}
		if existing != candidate {
			return &Conflict{
				Source:       SourceRecords,
				RUT:          canonicalID,
				ExistingName: r.DisplayName,
				RecordID:     r.ID,
			}
		}
	}

	return nil
}
