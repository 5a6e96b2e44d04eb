// Package common defines shared constants and sentinel errors used across
// the sync engine. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Remote/transport errors. ErrUnavailable wraps any transport-level
	// failure (connection refused, timeout, 5xx) so callers can fall back
	// to the local backup instead of treating it as a validation problem.
	ErrUnavailable = errors.New("remote unavailable")

	// Validation errors. These reject a mutation before any network call.
	ErrInvalidRUT       = errors.New("invalid rut")
	ErrDuplicateRUT     = errors.New("duplicate rut")
	ErrIdentityConflict = errors.New("identity conflict")

	// Sync-state errors.
	ErrNoBackup        = errors.New("no local backup available")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrFetchSuperseded = errors.New("fetch superseded by a newer one")
)
