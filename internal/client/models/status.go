package models

import "time"

// SyncState is the per-partition synchronization state machine:
// idle -> syncing -> {idle (success), error}.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncError   SyncState = "error"
)

// ModuleSyncStatus tracks one partition's sync health. Partitions are
// independent: one failing never marks the other as failed.
type ModuleSyncStatus struct {
	State       SyncState `json:"state"`
	LastSuccess time.Time `json:"lastSuccess,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
}

// FetchResult is what a refresh hands back to the caller.
type FetchResult struct {
	Records  []PermitRecord `json:"records"`
	Warnings []ParseWarning `json:"warnings,omitempty"`
	// Degraded is set when the data came from the local backup instead of
	// the remote (offline or fetch failure).
	Degraded bool `json:"degraded,omitempty"`
	// BackupAt is the last-backup timestamp when Degraded is set and known.
	BackupAt time.Time `json:"backupAt,omitzero"`
}

// RosterResult is what an employee refresh hands back to the caller. The
// degraded/backup semantics match FetchResult.
type RosterResult struct {
	Employees []Employee `json:"employees"`
	Degraded  bool       `json:"degraded,omitempty"`
	BackupAt  time.Time  `json:"backupAt,omitzero"`
}

// ParseWarning is a non-fatal anomaly found while normalizing raw rows.
type ParseWarning struct {
	Row     string `json:"row"`
	Message string `json:"message"`
}
