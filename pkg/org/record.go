package org

import "strings"

// DefaultFTE is the full-time-equivalent value assumed when a record does
// not carry one.
const DefaultFTE = 1.0

// Record is a single validated employee row, the external input to [Build].
// Identifiers are stored trimmed; a Record with an empty ID is not usable
// and is discarded during construction.
type Record struct {
	ID             string  // Unique employee identifier
	Name           string  // Display name
	ManagerID      string  // Identifier of the direct manager (empty for roots)
	Department     string  // Department name, drives color assignment
	Title          string  // Optional job title
	Location       string  // Optional office / site
	EmploymentType string  // Optional (e.g. "full-time", "contractor")
	FTE            float64 // Full-time equivalent, defaults to DefaultFTE

	// DottedManagerID is an optional secondary (matrix) manager reference.
	// It is carried through for display and export but has no structural
	// meaning: the forest is strictly single-parent.
	DottedManagerID string
}

// Normalize returns a copy of the record with identifiers trimmed and the
// FTE defaulted. It does not validate; blank-ID records are filtered out by
// [Build].
func (r Record) Normalize() Record {
	r.ID = strings.TrimSpace(r.ID)
	r.ManagerID = strings.TrimSpace(r.ManagerID)
	r.DottedManagerID = strings.TrimSpace(r.DottedManagerID)
	if r.FTE == 0 {
		r.FTE = DefaultFTE
	}
	return r
}

// IsRootCandidate reports whether the record declares no manager.
func (r Record) IsRootCandidate() bool {
	return strings.TrimSpace(r.ManagerID) == ""
}
