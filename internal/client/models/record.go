// Package models defines the client-side data model shared by the sync
// engine, the parser and the local backup store.
package models

import "time"

// Partition identifies one of the two independently synchronized record
// categories, each with its own remote endpoint and row schema.
type Partition string

const (
	// PartitionPA holds administrative-leave records.
	PartitionPA Partition = "PA"
	// PartitionFL holds statutory-vacation records.
	PartitionFL Partition = "FL"
)

// Partitions lists all record partitions in a stable order.
var Partitions = []Partition{PartitionPA, PartitionFL}

// PeriodBalance is one vacation-period block on an FL record.
type PeriodBalance struct {
	Year      int     `json:"year"`
	Available float64 `json:"available"`
	Requested float64 `json:"requested"`
	Final     float64 `json:"final"`
}

// IsZero reports whether the block is entirely unpopulated. FL records must
// keep the second period all-or-nothing, never half-filled.
func (p PeriodBalance) IsZero() bool {
	return p.Year == 0 && p.Available == 0 && p.Requested == 0 && p.Final == 0
}

// PermitRecord is a single leave/permit record. Records sourced from the
// remote get deterministic ids derived from their source row; records created
// locally get uuids.
type PermitRecord struct {
	ID        string    `json:"id"`
	Partition Partition `json:"partition"`

	RUT         string `json:"rut"` // canonical form
	DisplayName string `json:"displayName"`

	ActNumber  string `json:"actNumber"`
	DecreeDate string `json:"decreeDate"` // ISO YYYY-MM-DD, "" when unknown
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`

	RequestedDays   float64 `json:"requestedDays"`
	EntitlementDays float64 `json:"entitlementDays"`

	// FirstPeriod/SecondPeriod are meaningful for PartitionFL only.
	FirstPeriod  PeriodBalance `json:"firstPeriod,omitzero"`
	SecondPeriod PeriodBalance `json:"secondPeriod,omitzero"`

	CreatedAt time.Time `json:"createdAt"`
}

// Employee is one entry of the employee roster. RUT is canonical and unique
// within the set.
type Employee struct {
	RUT         string `json:"rut"`
	DisplayName string `json:"displayName"`
	Department  string `json:"department,omitempty"`
}

// CloneRecords deep-copies a record slice. Undo snapshots and accessor
// results must not alias the orchestrator's live set.
func CloneRecords(records []PermitRecord) []PermitRecord {
	if records == nil {
		return nil
	}
	out := make([]PermitRecord, len(records))
	copy(out, records)
	return out
}

// CloneEmployees deep-copies an employee slice.
func CloneEmployees(employees []Employee) []Employee {
	if employees == nil {
		return nil
	}
	out := make([]Employee, len(employees))
	copy(out, employees)
	return out
}
