// Package events carries peer-originated change notifications. The log is
// append-only: publishing never mutates or removes past events, and every
// subscriber of a scope sees every event published to it afterwards.
//
// The Bus interface is transport-agnostic; the production transport (a
// shared remote log) is an external collaborator that satisfies it.
// MemoryBus is the in-process implementation used by tests and by
// single-client deployments.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Handler receives one event. Handlers must not block; debounce slow work.
type Handler func(models.SyncEvent)

// Bus is the publish/subscribe surface of the shared change log.
type Bus interface {
	// Publish appends an event to the log and notifies subscribers of its
	// scope. CreatedAt is stamped when unset.
	Publish(ctx context.Context, event models.SyncEvent) error

	// Subscribe registers a handler for one scope and returns an
	// unsubscribe function.
	Subscribe(scope models.EventScope, h Handler) (unsubscribe func())
}

// MemoryBus is an in-process Bus with an append-only log.
type MemoryBus struct {
	mu       sync.Mutex
	log      []models.SyncEvent
	nextID   int
	handlers map[models.EventScope]map[int]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[models.EventScope]map[int]Handler)}
}

func (b *MemoryBus) Publish(_ context.Context, event models.SyncEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	b.mu.Lock()
	b.log = append(b.log, event)
	var targets []Handler
	for _, h := range b.handlers[event.Scope] {
		targets = append(targets, h)
	}
	b.mu.Unlock()

	for _, h := range targets {
		h(event)
	}
	return nil
}

func (b *MemoryBus) Subscribe(scope models.EventScope, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.handlers[scope] == nil {
		b.handlers[scope] = make(map[int]Handler)
	}
	b.handlers[scope][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[scope], id)
	}
}

// Log returns a copy of the full event log, oldest first.
func (b *MemoryBus) Log() []models.SyncEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.SyncEvent, len(b.log))
	copy(out, b.log)
	return out
}
