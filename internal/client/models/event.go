package models

import "time"

// EventScope groups realtime events by the dataset they touch.
type EventScope string

const (
	ScopeRecords   EventScope = "records"
	ScopeEmployees EventScope = "employees"
	ScopeAdmin     EventScope = "admin"
)

// SyncEvent is one entry of the shared append-only change log. Peers
// subscribe per scope and use events to invalidate their local view.
type SyncEvent struct {
	Scope          EventScope     `json:"scope"`
	Action         string         `json:"action"`
	ActorEmail     string         `json:"actorEmail,omitempty"`
	OriginClientID string         `json:"originClientId"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}
