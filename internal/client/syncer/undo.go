package syncer

import (
	"sync"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// undoDepth bounds the snapshot stack; the oldest snapshot is evicted when
// an eleventh mutation lands.
const undoDepth = 10

// UndoStack keeps full pre-mutation copies of the record set. Because every
// mutation records the previous state first, popping always recovers the
// immediately preceding durable state, bounded by depth.
type UndoStack struct {
	mu        sync.Mutex
	limit     int
	snapshots [][]models.PermitRecord
}

func NewUndoStack(limit int) *UndoStack {
	if limit <= 0 {
		limit = undoDepth
	}
	return &UndoStack{limit: limit}
}

// Record pushes a deep copy of previous, evicting the oldest snapshot when
// the stack is full.
func (u *UndoStack) Record(previous []models.PermitRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.snapshots = append(u.snapshots, models.CloneRecords(previous))
	if len(u.snapshots) > u.limit {
		u.snapshots = u.snapshots[1:]
	}
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() ([]models.PermitRecord, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.snapshots) == 0 {
		return nil, false
	}
	last := u.snapshots[len(u.snapshots)-1]
	u.snapshots = u.snapshots[:len(u.snapshots)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (u *UndoStack) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.snapshots)
}
