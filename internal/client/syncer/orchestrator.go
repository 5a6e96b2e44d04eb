// Package syncer composes the parser, the conflict resolver, the remote
// client, the local backup store and the event bus into the public
// read/write surface of the sync engine.
//
// Concurrency model: the in-memory record and employee sets are mutated only
// through this type, under one mutex. Network operations run outside the
// lock; a fetch is applied only if it is still the most recently issued one.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/conflict"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/events"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/parse"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/remote"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/repositories/backup"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/common"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/logging"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/rut"
)

// Less orders two records; the merged set is sorted with it after a fetch.
type Less func(a, b models.PermitRecord) bool

// defaultLess orders by start date, then decree date, then id for stability.
func defaultLess(a, b models.PermitRecord) bool {
	if a.StartDate != b.StartDate {
		return a.StartDate < b.StartDate
	}
	if a.DecreeDate != b.DecreeDate {
		return a.DecreeDate < b.DecreeDate
	}
	return a.ID < b.ID
}

// Options configures an Orchestrator. API, Backup and Bus are required.
type Options struct {
	API    remote.Client
	Backup backup.Store
	Bus    events.Bus
	Logger logging.Logger

	// BearerToken is only used to derive the actor email stamped on events.
	BearerToken string

	// RetryDelay is the fixed delay before a failed push is retried.
	// Defaults to 30s.
	RetryDelay time.Duration

	// DebounceWindow collapses bursts of peer events into one re-fetch.
	// Defaults to 900ms.
	DebounceWindow time.Duration

	// ValidatePush asks the remote to validate rows on push.
	ValidatePush bool

	// Less is the record comparator; defaults to start-date order.
	Less Less

	// OnError receives human-readable sync failures (transport or remote
	// rejection). Validation failures are returned to the caller instead.
	OnError func(scope string, err error)
}

// Orchestrator is the sync engine. Create with New, release with Close.
type Orchestrator struct {
	api   remote.Client
	store backup.Store
	bus   events.Bus
	log   logging.Logger

	clientID string
	actor    string

	less         Less
	validatePush bool
	onError      func(scope string, err error)

	retry *RetryScheduler
	undo  *UndoStack

	recordsDebounce   *events.Debouncer
	employeesDebounce *events.Debouncer
	unsubscribe       []func()

	mu        sync.Mutex
	records   []models.PermitRecord
	employees []models.Employee
	status    map[models.Partition]models.ModuleSyncStatus
	empStatus models.ModuleSyncStatus

	online      bool
	pendingPush bool

	fetchGen    uint64
	fetchCancel context.CancelFunc
}

func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	retryDelay := opts.RetryDelay
	if retryDelay == 0 {
		retryDelay = 30 * time.Second
	}
	window := opts.DebounceWindow
	if window == 0 {
		window = 900 * time.Millisecond
	}
	less := opts.Less
	if less == nil {
		less = defaultLess
	}
	onError := opts.OnError
	if onError == nil {
		onError = func(string, error) {}
	}

	o := &Orchestrator{
		api:          opts.API,
		store:        opts.Backup,
		bus:          opts.Bus,
		log:          log,
		clientID:     uuid.NewString(),
		actor:        events.ActorEmail(opts.BearerToken),
		less:         less,
		validatePush: opts.ValidatePush,
		onError:      onError,
		retry:        NewRetryScheduler(retryDelay),
		undo:         NewUndoStack(undoDepth),
		online:       true,
		status: map[models.Partition]models.ModuleSyncStatus{
			models.PartitionPA: {State: models.SyncIdle},
			models.PartitionFL: {State: models.SyncIdle},
		},
		empStatus: models.ModuleSyncStatus{State: models.SyncIdle},
	}

	o.recordsDebounce = events.NewDebouncer(window, func() {
		if _, err := o.Refresh(context.Background()); err != nil && !errors.Is(err, common.ErrFetchSuperseded) {
			o.log.Warn(context.Background(), "peer-triggered refresh failed", "error", err)
		}
	})
	o.employeesDebounce = events.NewDebouncer(window, func() {
		if _, err := o.RefreshEmployees(context.Background()); err != nil {
			o.log.Warn(context.Background(), "peer-triggered roster refresh failed", "error", err)
		}
	})

	o.unsubscribe = append(o.unsubscribe,
		o.bus.Subscribe(models.ScopeRecords, o.onPeerEvent(o.recordsDebounce)),
		o.bus.Subscribe(models.ScopeEmployees, o.onPeerEvent(o.employeesDebounce)),
	)

	return o
}

// Close tears the engine down: subscriptions, debounce and retry timers,
// and any in-flight fetch.
func (o *Orchestrator) Close() {
	for _, u := range o.unsubscribe {
		u()
	}
	o.recordsDebounce.Stop()
	o.employeesDebounce.Stop()
	o.retry.Clear()

	o.mu.Lock()
	if o.fetchCancel != nil {
		o.fetchCancel()
		o.fetchCancel = nil
	}
	o.mu.Unlock()
}

func (o *Orchestrator) onPeerEvent(d *events.Debouncer) events.Handler {
	return func(e models.SyncEvent) {
		if e.OriginClientID == o.clientID {
			return
		}
		d.Trigger()
	}
}

// Records returns a copy of the current record set.
func (o *Orchestrator) Records() []models.PermitRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return models.CloneRecords(o.records)
}

// Employees returns a copy of the current roster.
func (o *Orchestrator) Employees() []models.Employee {
	o.mu.Lock()
	defer o.mu.Unlock()
	return models.CloneEmployees(o.employees)
}

// Status returns the per-partition sync status plus the roster's.
func (o *Orchestrator) Status() (map[models.Partition]models.ModuleSyncStatus, models.ModuleSyncStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	statuses := make(map[models.Partition]models.ModuleSyncStatus, len(o.status))
	for p, s := range o.status {
		statuses[p] = s
	}
	return statuses, o.empStatus
}

// SetOnline feeds connectivity transitions from the watcher. Regaining
// connectivity with a push pending resumes it automatically; going offline
// clears any armed retry in favor of the pending flag.
func (o *Orchestrator) SetOnline(online bool) {
	o.mu.Lock()
	was := o.online
	o.online = online
	resume := online && !was && o.pendingPush
	if resume {
		o.pendingPush = false
	}
	o.mu.Unlock()

	if !online {
		if o.retry.Armed() {
			o.retry.Clear()
			o.mu.Lock()
			o.pendingPush = true
			o.mu.Unlock()
		}
		return
	}
	if resume {
		o.log.Info(context.Background(), "connectivity regained; resuming pending push")
		go func() {
			if err := o.Push(context.Background()); err != nil {
				o.log.Warn(context.Background(), "resumed push failed", "error", err)
			}
		}()
	}
}

// Refresh fetches both record partitions in parallel, merges and sorts the
// results, and persists them as the new last-known-good set. A partition
// failing keeps its previous in-memory rows and its own error status without
// affecting the other. When nothing could be fetched (offline or both
// partitions down) the local backup is used and the result flagged degraded;
// an empty backup yields common.ErrNoBackup.
//
// A newly issued Refresh cancels and supersedes any in-flight one: the older
// call returns common.ErrFetchSuperseded and its outcome is discarded,
// regardless of arrival order.
func (o *Orchestrator) Refresh(ctx context.Context) (models.FetchResult, error) {
	o.mu.Lock()
	if o.fetchCancel != nil {
		o.fetchCancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	o.fetchCancel = cancel
	o.fetchGen++
	gen := o.fetchGen
	online := o.online
	for _, p := range models.Partitions {
		s := o.status[p]
		s.State = models.SyncSyncing
		o.status[p] = s
	}
	o.mu.Unlock()

	if !online {
		return o.fallbackToBackup(ctx, gen, errors.New("offline"))
	}

	type outcome struct {
		rows [][]string
		err  error
	}
	results := make([]outcome, len(models.Partitions))

	g, gctx := errgroup.WithContext(fctx)
	for i, p := range models.Partitions {
		i, p := i, p
		g.Go(func() error {
			rows, err := o.api.FetchRows(gctx, p)
			results[i] = outcome{rows: rows, err: err}
			return nil // partition failures are independent, never joint
		})
	}
	_ = g.Wait()

	fetchedAt := time.Now().UTC()

	o.mu.Lock()
	if gen != o.fetchGen {
		o.mu.Unlock()
		return models.FetchResult{}, common.ErrFetchSuperseded
	}

	var warnings []models.ParseWarning
	merged := make([]models.PermitRecord, 0, len(o.records))
	failed := 0
	for i, p := range models.Partitions {
		s := o.status[p]
		if err := results[i].err; err != nil {
			failed++
			s.State = models.SyncError
			s.LastError = err.Error()
			o.status[p] = s
			// keep the partition's previous rows
			for _, r := range o.records {
				if r.Partition == p {
					merged = append(merged, r)
				}
			}
			o.notifyError(string(p), err)
			continue
		}
		records, w := parse.Records(results[i].rows, p, fetchedAt)
		warnings = append(warnings, w...)
		merged = append(merged, records...)
		s.State = models.SyncIdle
		s.LastSuccess = fetchedAt
		s.LastError = ""
		o.status[p] = s
	}

	if failed == len(models.Partitions) {
		lastErr := results[0].err
		o.mu.Unlock()
		return o.fallbackToBackup(ctx, gen, lastErr)
	}

	sort.SliceStable(merged, func(i, j int) bool { return o.less(merged[i], merged[j]) })
	o.records = merged
	snapshot := models.CloneRecords(merged)
	o.mu.Unlock()

	o.persistRecords(snapshot)

	return models.FetchResult{Records: snapshot, Warnings: warnings}, nil
}

// fallbackToBackup serves the last-known-good set when the remote is out of
// reach. The caller's generation must still be current for the result to be
// applied.
func (o *Orchestrator) fallbackToBackup(ctx context.Context, gen uint64, cause error) (models.FetchResult, error) {
	o.mu.Lock()
	superseded := gen != o.fetchGen
	o.mu.Unlock()
	if superseded {
		return models.FetchResult{}, common.ErrFetchSuperseded
	}

	records, savedAt, err := o.store.LoadRecords(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return models.FetchResult{}, fmt.Errorf("%w (fetch failed: %v)", common.ErrNoBackup, cause)
	}
	if err != nil {
		return models.FetchResult{}, fmt.Errorf("backup read failed: %w", err)
	}

	o.mu.Lock()
	if gen != o.fetchGen {
		o.mu.Unlock()
		return models.FetchResult{}, common.ErrFetchSuperseded
	}
	o.records = models.CloneRecords(records)
	for _, p := range models.Partitions {
		s := o.status[p]
		if s.State == models.SyncSyncing {
			s.State = models.SyncError
			s.LastError = cause.Error()
			o.status[p] = s
		}
	}
	o.mu.Unlock()

	o.log.Warn(ctx, "serving records from local backup", "cause", cause, "backup_at", savedAt)
	return models.FetchResult{Records: records, Degraded: true, BackupAt: savedAt}, nil
}

// RefreshEmployees fetches the roster, falling back to the backup when the
// remote is unavailable. A result served from the backup carries the degraded
// flag and the last-backup timestamp, same as Refresh.
func (o *Orchestrator) RefreshEmployees(ctx context.Context) (models.RosterResult, error) {
	o.mu.Lock()
	o.empStatus.State = models.SyncSyncing
	online := o.online
	o.mu.Unlock()

	var rows [][]string
	var err error
	if online {
		rows, err = o.api.FetchEmployeeRows(ctx)
	} else {
		err = fmt.Errorf("%w: offline", common.ErrUnavailable)
	}

	if err != nil {
		o.mu.Lock()
		o.empStatus.State = models.SyncError
		o.empStatus.LastError = err.Error()
		o.mu.Unlock()
		o.notifyError("employees", err)

		employees, savedAt, berr := o.store.LoadEmployees(ctx)
		if errors.Is(berr, common.ErrNotFound) {
			return models.RosterResult{}, fmt.Errorf("%w (fetch failed: %v)", common.ErrNoBackup, err)
		}
		if berr != nil {
			return models.RosterResult{}, fmt.Errorf("backup read failed: %w", berr)
		}
		o.mu.Lock()
		o.employees = models.CloneEmployees(employees)
		o.mu.Unlock()
		o.log.Warn(ctx, "serving roster from local backup", "backup_at", savedAt)
		return models.RosterResult{Employees: employees, Degraded: true, BackupAt: savedAt}, nil
	}

	employees, warnings := parse.Employees(rows)
	for _, w := range warnings {
		o.log.Warn(ctx, "roster parse warning", "row", w.Row, "message", w.Message)
	}

	o.mu.Lock()
	o.employees = models.CloneEmployees(employees)
	o.empStatus.State = models.SyncIdle
	o.empStatus.LastSuccess = time.Now().UTC()
	o.empStatus.LastError = ""
	o.mu.Unlock()

	o.persistEmployees(employees)
	return models.RosterResult{Employees: employees}, nil
}

// SaveRecord validates and upserts one record, then pushes the full dataset.
// It is the single mutation entry point for records: the pre-mutation state
// is snapshotted for undo before anything changes.
func (o *Orchestrator) SaveRecord(ctx context.Context, rec models.PermitRecord) error {
	canonical, ok := rut.Canonicalize(rec.RUT)
	if !ok || !rut.ValidateChecksum(canonical) {
		return fmt.Errorf("%w: %q", common.ErrInvalidRUT, rec.RUT)
	}
	rec.RUT = canonical

	if rec.Partition != models.PartitionPA && rec.Partition != models.PartitionFL {
		return fmt.Errorf("unknown partition %q", rec.Partition)
	}

	o.mu.Lock()
	if c := conflict.Find(canonical, rec.DisplayName, o.employees, o.records, conflict.Ignore{RecordID: rec.ID}); c != nil {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s is registered as %q (%s)", common.ErrIdentityConflict,
			rut.FormatForDisplay(c.RUT), c.ExistingName, c.Source)
	}

	o.undo.Record(o.records)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = time.Now().UTC()
	}
	replaced := false
	for i := range o.records {
		if o.records[i].ID == rec.ID {
			o.records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		o.records = append(o.records, rec)
	}
	o.mu.Unlock()

	return o.pushRecords(ctx, "record_saved", map[string]any{"recordId": rec.ID})
}

// DeleteRecord removes a record. The deletion is only final once the push
// that propagates it succeeds; until then it stays pending/retryable.
func (o *Orchestrator) DeleteRecord(ctx context.Context, id string) error {
	o.mu.Lock()
	idx := -1
	for i := range o.records {
		if o.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return fmt.Errorf("%w: record %s", common.ErrNotFound, id)
	}
	o.undo.Record(o.records)
	o.records = append(o.records[:idx], o.records[idx+1:]...)
	o.mu.Unlock()

	return o.pushRecords(ctx, "record_deleted", map[string]any{"recordId": id})
}

// Undo restores the most recent snapshot and pushes it: rollback is itself
// a durable mutation, not a local view change.
func (o *Orchestrator) Undo(ctx context.Context) error {
	snapshot, ok := o.undo.Pop()
	if !ok {
		return common.ErrNothingToUndo
	}

	o.mu.Lock()
	o.records = snapshot
	o.mu.Unlock()

	return o.pushRecords(ctx, "undo", nil)
}

// UndoDepth reports how many snapshots are available.
func (o *Orchestrator) UndoDepth() int {
	return o.undo.Len()
}

// PushPending reports whether a mutation is waiting for connectivity to be
// pushed. Offline mutations succeed locally with this flag set.
func (o *Orchestrator) PushPending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingPush
}

// Push serializes and pushes the full record set, both partitions in
// parallel. All partitions with a non-empty payload must succeed; a
// partition with nothing to send short-circuits as success. On failure the
// caller-facing error covers the whole push and exactly one retry is armed
// (or the pending flag set while offline).
func (o *Orchestrator) Push(ctx context.Context) error {
	return o.pushRecords(ctx, "records_pushed", nil)
}

func (o *Orchestrator) pushRecords(ctx context.Context, action string, metadata map[string]any) error {
	o.retry.Clear() // a new push replaces any scheduled retry

	o.mu.Lock()
	records := models.CloneRecords(o.records)
	online := o.online
	if !online {
		o.pendingPush = true
		o.mu.Unlock()
		o.log.Info(ctx, "offline; push pending until connectivity returns")
		return nil
	}
	payloads := make(map[models.Partition][][]string, len(models.Partitions))
	for _, p := range models.Partitions {
		rows := parse.Rows(records, p)
		payloads[p] = rows
		if len(rows) > 0 {
			s := o.status[p]
			s.State = models.SyncSyncing
			o.status[p] = s
		}
	}
	o.mu.Unlock()

	errs := make([]error, len(models.Partitions))
	var g errgroup.Group
	for i, p := range models.Partitions {
		i, p := i, p
		rows := payloads[p]
		if len(rows) == 0 {
			continue // nothing to send counts as success
		}
		g.Go(func() error {
			errs[i] = o.api.PushRows(ctx, p, rows, o.validatePush)
			return errs[i]
		})
	}
	pushErr := g.Wait() // evaluated jointly once both resolve

	now := time.Now().UTC()
	o.mu.Lock()
	for i, p := range models.Partitions {
		if len(payloads[p]) == 0 {
			continue
		}
		s := o.status[p]
		if err := errs[i]; err != nil {
			s.State = models.SyncError
			s.LastError = err.Error()
		} else {
			s.State = models.SyncIdle
			s.LastSuccess = now
			s.LastError = ""
		}
		o.status[p] = s
	}
	o.mu.Unlock()

	if pushErr != nil {
		o.handlePushFailure(ctx, pushErr)
		return fmt.Errorf("push failed: %w", pushErr)
	}

	o.mu.Lock()
	o.pendingPush = false
	o.mu.Unlock()

	o.persistRecords(records)
	o.publish(ctx, models.ScopeRecords, action, metadata)
	return nil
}

// handlePushFailure arms exactly one retry while online, or flags the push
// pending while offline so the watcher can resume it edge-triggered.
func (o *Orchestrator) handlePushFailure(ctx context.Context, cause error) {
	o.notifyError("push", cause)

	o.mu.Lock()
	online := o.online
	if !online {
		o.pendingPush = true
	}
	o.mu.Unlock()

	if !online {
		o.log.Warn(ctx, "push failed while offline; pending resume", "error", cause)
		return
	}

	o.log.Warn(ctx, "push failed; retry scheduled", "error", cause)
	o.retry.Arm(func() {
		if err := o.Push(context.Background()); err != nil {
			o.log.Warn(context.Background(), "retried push failed", "error", err)
		}
	})
}

// AddEmployee validates and appends a new roster entry and pushes the
// roster. The canonical rut must not already be present.
func (o *Orchestrator) AddEmployee(ctx context.Context, emp models.Employee) error {
	canonical, ok := rut.Canonicalize(emp.RUT)
	if !ok || !rut.ValidateChecksum(canonical) {
		return fmt.Errorf("%w: %q", common.ErrInvalidRUT, emp.RUT)
	}
	emp.RUT = canonical

	o.mu.Lock()
	for _, e := range o.employees {
		if e.RUT == canonical {
			o.mu.Unlock()
			return fmt.Errorf("%w: %s already belongs to %q", common.ErrDuplicateRUT,
				rut.FormatForDisplay(canonical), e.DisplayName)
		}
	}
	if c := conflict.Find(canonical, emp.DisplayName, nil, o.records, conflict.Ignore{}); c != nil {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s appears in records as %q", common.ErrIdentityConflict,
			rut.FormatForDisplay(c.RUT), c.ExistingName)
	}
	o.employees = append(o.employees, emp)
	employees := models.CloneEmployees(o.employees)
	o.mu.Unlock()

	return o.pushEmployees(ctx, employees, "employee_added", map[string]any{"rut": canonical})
}

// UpdateEmployee replaces an existing roster entry. The record scan is
// suppressed for the employee's own current name so renaming does not
// conflict with the employee's own history being edited alongside.
func (o *Orchestrator) UpdateEmployee(ctx context.Context, emp models.Employee) error {
	canonical, ok := rut.Canonicalize(emp.RUT)
	if !ok || !rut.ValidateChecksum(canonical) {
		return fmt.Errorf("%w: %q", common.ErrInvalidRUT, emp.RUT)
	}
	emp.RUT = canonical

	o.mu.Lock()
	idx := -1
	for i := range o.employees {
		if o.employees[i].RUT == canonical {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return fmt.Errorf("%w: employee %s", common.ErrNotFound, rut.FormatForDisplay(canonical))
	}
	previousName := o.employees[idx].DisplayName
	if c := conflict.Find(canonical, emp.DisplayName, nil, o.records,
		conflict.Ignore{EmployeeRUT: canonical, EmployeeName: previousName}); c != nil {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s appears in records as %q", common.ErrIdentityConflict,
			rut.FormatForDisplay(c.RUT), c.ExistingName)
	}
	o.employees[idx] = emp
	employees := models.CloneEmployees(o.employees)
	o.mu.Unlock()

	return o.pushEmployees(ctx, employees, "employee_updated", map[string]any{"rut": canonical})
}

// DeleteEmployee removes one roster entry by canonical rut.
func (o *Orchestrator) DeleteEmployee(ctx context.Context, rutStr string) error {
	canonical, ok := rut.Canonicalize(rutStr)
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrInvalidRUT, rutStr)
	}

	o.mu.Lock()
	idx := -1
	for i := range o.employees {
		if o.employees[i].RUT == canonical {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return fmt.Errorf("%w: employee %s", common.ErrNotFound, rut.FormatForDisplay(canonical))
	}
	o.employees = append(o.employees[:idx], o.employees[idx+1:]...)
	employees := models.CloneEmployees(o.employees)
	o.mu.Unlock()

	return o.pushEmployees(ctx, employees, "employee_deleted", map[string]any{"rut": canonical})
}

func (o *Orchestrator) pushEmployees(ctx context.Context, employees []models.Employee, action string, metadata map[string]any) error {
	err := o.api.PushEmployeeRows(ctx, parse.EmployeeRows(employees))

	o.mu.Lock()
	if err != nil {
		o.empStatus.State = models.SyncError
		o.empStatus.LastError = err.Error()
	} else {
		o.empStatus.State = models.SyncIdle
		o.empStatus.LastSuccess = time.Now().UTC()
		o.empStatus.LastError = ""
	}
	o.mu.Unlock()

	if err != nil {
		o.notifyError("employees", err)
		return fmt.Errorf("employees push failed: %w", err)
	}

	o.persistEmployees(employees)
	o.publish(ctx, models.ScopeEmployees, action, metadata)
	return nil
}

// persistRecords writes the backup fire-and-forget: failures are logged,
// never surfaced, and callers never block on it.
func (o *Orchestrator) persistRecords(records []models.PermitRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.store.SaveRecords(ctx, records); err != nil {
			o.log.Error(ctx, "backup write failed", "error", err)
		}
	}()
}

func (o *Orchestrator) persistEmployees(employees []models.Employee) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.store.SaveEmployees(ctx, employees); err != nil {
			o.log.Error(ctx, "backup write failed", "error", err)
		}
	}()
}

func (o *Orchestrator) publish(ctx context.Context, scope models.EventScope, action string, metadata map[string]any) {
	event := models.SyncEvent{
		Scope:          scope,
		Action:         action,
		ActorEmail:     o.actor,
		OriginClientID: o.clientID,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}
	if err := o.bus.Publish(ctx, event); err != nil {
		o.log.Warn(ctx, "event publish failed", "action", action, "error", err)
	}
}

func (o *Orchestrator) notifyError(scope string, err error) {
	o.onError(scope, err)
}
