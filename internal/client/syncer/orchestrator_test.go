package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/events"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/common"
)

// fakeRemote is a scripted remote.Client.
type fakeRemote struct {
	mu         sync.Mutex
	rows       map[models.Partition][][]string
	fetchErr   map[models.Partition]error
	fetchCalls atomic.Int32
	// blockFirst, when set, blocks the first two FetchRows calls (one per
	// partition) until closed or the request context is canceled.
	blockFirst chan struct{}

	pushErr  map[models.Partition]error
	pushes   map[models.Partition]int
	lastPush map[models.Partition][][]string

	empRows     [][]string
	empFetchErr error
	empPushes   int
	empPushErr  error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		rows:     map[models.Partition][][]string{},
		fetchErr: map[models.Partition]error{},
		pushErr:  map[models.Partition]error{},
		pushes:   map[models.Partition]int{},
		lastPush: map[models.Partition][][]string{},
	}
}

func (f *fakeRemote) FetchRows(ctx context.Context, p models.Partition) ([][]string, error) {
	n := f.fetchCalls.Add(1)
	if f.blockFirst != nil && n <= 2 {
		select {
		case <-f.blockFirst:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, ctx.Err())
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fetchErr[p]; err != nil {
		return nil, err
	}
	return f.rows[p], nil
}

func (f *fakeRemote) PushRows(_ context.Context, p models.Partition, rows [][]string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes[p]++
	f.lastPush[p] = rows
	return f.pushErr[p]
}

func (f *fakeRemote) FetchEmployeeRows(context.Context) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.empFetchErr != nil {
		return nil, f.empFetchErr
	}
	return f.empRows, nil
}

func (f *fakeRemote) PushEmployeeRows(_ context.Context, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.empPushes++
	return f.empPushErr
}

func (f *fakeRemote) Ping(context.Context) error { return nil }

func (f *fakeRemote) empPushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.empPushes
}

func (f *fakeRemote) pushCount(p models.Partition) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes[p]
}

func (f *fakeRemote) setPushErr(p models.Partition, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushErr[p] = err
}

// memBackup is an in-memory backup.Store.
type memBackup struct {
	mu          sync.Mutex
	records     []models.PermitRecord
	recordsAt   time.Time
	hasRecords  bool
	employees   []models.Employee
	employeesAt time.Time
	hasEmps     bool
}

func (m *memBackup) SaveRecords(_ context.Context, records []models.PermitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = models.CloneRecords(records)
	m.recordsAt = time.Now().UTC()
	m.hasRecords = true
	return nil
}

func (m *memBackup) LoadRecords(context.Context) ([]models.PermitRecord, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasRecords {
		return nil, time.Time{}, common.ErrNotFound
	}
	return models.CloneRecords(m.records), m.recordsAt, nil
}

func (m *memBackup) SaveEmployees(_ context.Context, employees []models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = models.CloneEmployees(employees)
	m.employeesAt = time.Now().UTC()
	m.hasEmps = true
	return nil
}

func (m *memBackup) LoadEmployees(context.Context) ([]models.Employee, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasEmps {
		return nil, time.Time{}, common.ErrNotFound
	}
	return models.CloneEmployees(m.employees), m.employeesAt, nil
}

func (m *memBackup) savedRecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasRecords {
		return -1
	}
	return len(m.records)
}

func newTestOrchestrator(t *testing.T, api *fakeRemote, store *memBackup) (*Orchestrator, *events.MemoryBus) {
	t.Helper()
	bus := events.NewMemoryBus()
	o := New(Options{
		API:            api,
		Backup:         store,
		Bus:            bus,
		RetryDelay:     time.Hour, // tests trigger retries explicitly unless stated
		DebounceWindow: 20 * time.Millisecond,
	})
	t.Cleanup(o.Close)
	return o, bus
}

func paFixtureRow(name, rutStr, act, decree string) []string {
	return []string{name, rutStr, act, decree, decree, decree, "1", "6"}
}

func TestRefresh_MergesSortsAndBacksUp(t *testing.T) {
	api := newFakeRemote()
	api.rows[models.PartitionPA] = [][]string{
		paFixtureRow("Juan Pérez", "12345678-5", "101", "2025-02-10"),
	}
	api.rows[models.PartitionFL] = [][]string{
		append(paFixtureRow("Ana Soto", "20347878-K", "50", "2025-01-05"), "2024", "15", "5", "10", "", "", "", ""),
	}
	store := &memBackup{}
	o, _ := newTestOrchestrator(t, api, store)

	result, err := o.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.False(t, result.Degraded)

	// sorted by start date: the FL record (January) precedes the PA one
	assert.Equal(t, models.PartitionFL, result.Records[0].Partition)
	assert.Equal(t, "20347878K", result.Records[0].RUT)
	assert.Equal(t, models.PartitionPA, result.Records[1].Partition)

	statuses, _ := o.Status()
	assert.Equal(t, models.SyncIdle, statuses[models.PartitionPA].State)
	assert.Equal(t, models.SyncIdle, statuses[models.PartitionFL].State)
	assert.False(t, statuses[models.PartitionPA].LastSuccess.IsZero())

	require.Eventually(t, func() bool { return store.savedRecordCount() == 2 },
		time.Second, 10*time.Millisecond, "backup must be written after a successful fetch")
}

func TestRefresh_PartitionFailureIsIndependent(t *testing.T) {
	api := newFakeRemote()
	api.rows[models.PartitionPA] = [][]string{
		paFixtureRow("Juan Pérez", "12345678-5", "101", "2025-02-10"),
	}
	api.fetchErr[models.PartitionFL] = fmt.Errorf("%w: 502", common.ErrUnavailable)
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	result, err := o.Refresh(context.Background())
	require.NoError(t, err, "one partition failing must not fail the refresh")
	require.Len(t, result.Records, 1)

	statuses, _ := o.Status()
	assert.Equal(t, models.SyncIdle, statuses[models.PartitionPA].State)
	assert.Equal(t, models.SyncError, statuses[models.PartitionFL].State)
	assert.Contains(t, statuses[models.PartitionFL].LastError, "502")
}

func TestRefresh_OfflineFallsBackToBackup(t *testing.T) {
	api := newFakeRemote()
	store := &memBackup{}
	require.NoError(t, store.SaveRecords(context.Background(), []models.PermitRecord{
		{ID: "cached", Partition: models.PartitionPA, RUT: "123456785"},
	}))
	o, _ := newTestOrchestrator(t, api, store)
	o.SetOnline(false)

	result, err := o.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.False(t, result.BackupAt.IsZero())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "cached", result.Records[0].ID)

	assert.Equal(t, int32(0), api.fetchCalls.Load(), "no network while offline")
}

func TestRefresh_OfflineWithEmptyBackup(t *testing.T) {
	o, _ := newTestOrchestrator(t, newFakeRemote(), &memBackup{})
	o.SetOnline(false)

	_, err := o.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrNoBackup)
}

func TestRefresh_SupersededFetchIsDiscarded(t *testing.T) {
	api := newFakeRemote()
	api.blockFirst = make(chan struct{})
	api.rows[models.PartitionPA] = [][]string{
		paFixtureRow("Juan Pérez", "12345678-5", "101", "2025-02-10"),
	}
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	firstErr := make(chan error, 1)
	go func() {
		_, err := o.Refresh(context.Background())
		firstErr <- err
	}()

	// wait for the first fetch to be in flight
	require.Eventually(t, func() bool { return api.fetchCalls.Load() >= 2 },
		time.Second, 5*time.Millisecond)

	result, err := o.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, common.ErrFetchSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded refresh did not return")
	}

	require.Len(t, o.Records(), 1, "stale outcome must not overwrite the fresh one")
	close(api.blockFirst)
}

func TestSaveRecord_InvalidRUTBlocksBeforeNetwork(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	err := o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-4", DisplayName: "Juan",
	})
	assert.ErrorIs(t, err, common.ErrInvalidRUT)

	err = o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "garbage", DisplayName: "Juan",
	})
	assert.ErrorIs(t, err, common.ErrInvalidRUT)

	assert.Equal(t, 0, api.pushCount(models.PartitionPA), "validation failures never reach the network")
	assert.Equal(t, 0, o.UndoDepth(), "rejected mutations record no snapshot")
}

func TestSaveRecord_IdentityConflictBlocks(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})
	o.mu.Lock()
	o.employees = []models.Employee{{RUT: "123456785", DisplayName: "Juan Pérez"}}
	o.mu.Unlock()

	err := o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12.345.678-5", DisplayName: "Pedro Soto",
	})
	assert.ErrorIs(t, err, common.ErrIdentityConflict)
	assert.Equal(t, 0, api.pushCount(models.PartitionPA))

	// same person, different formatting: no conflict
	err = o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12.345.678-5", DisplayName: "JUAN PEREZ",
	})
	assert.NoError(t, err)
}

func TestSaveRecord_PushesPersistsAndPublishes(t *testing.T) {
	api := newFakeRemote()
	store := &memBackup{}
	o, bus := newTestOrchestrator(t, api, store)

	err := o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
		StartDate: "2025-02-10", RequestedDays: 1,
	})
	require.NoError(t, err)

	require.Len(t, o.Records(), 1)
	assert.NotEmpty(t, o.Records()[0].ID, "locally created records get ids")
	assert.Equal(t, 1, api.pushCount(models.PartitionPA))
	assert.Equal(t, 0, api.pushCount(models.PartitionFL), "empty partition short-circuits")

	log := bus.Log()
	require.Len(t, log, 1)
	assert.Equal(t, "record_saved", log[0].Action)
	assert.Equal(t, models.ScopeRecords, log[0].Scope)

	require.Eventually(t, func() bool { return store.savedRecordCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestPushFailure_ArmsExactlyOneRetry(t *testing.T) {
	api := newFakeRemote()
	api.setPushErr(models.PartitionFL, fmt.Errorf("%w: timeout", common.ErrUnavailable))
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	require.NoError(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
	}))
	err := o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionFL, RUT: "20347878-K", DisplayName: "Ana Soto",
	})
	require.Error(t, err, "any failed partition fails the whole push")
	assert.True(t, o.retry.Armed(), "exactly one retry armed after a failure")

	// the successful partition keeps its success status
	statuses, _ := o.Status()
	assert.Equal(t, models.SyncIdle, statuses[models.PartitionPA].State)
	assert.Equal(t, models.SyncError, statuses[models.PartitionFL].State)

	// a second failure re-arms a single timer, never stacks
	err = o.Push(context.Background())
	require.Error(t, err)
	assert.True(t, o.retry.Armed())
}

func TestPushFailure_RetryFiresAndRecovers(t *testing.T) {
	api := newFakeRemote()
	api.setPushErr(models.PartitionPA, fmt.Errorf("%w: timeout", common.ErrUnavailable))
	bus := events.NewMemoryBus()
	o := New(Options{
		API:        api,
		Backup:     &memBackup{},
		Bus:        bus,
		RetryDelay: 25 * time.Millisecond,
	})
	t.Cleanup(o.Close)

	require.Error(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
	}))
	api.setPushErr(models.PartitionPA, nil)

	require.Eventually(t, func() bool { return api.pushCount(models.PartitionPA) >= 2 },
		time.Second, 5*time.Millisecond, "the armed retry must fire on its own")

	require.Eventually(t, func() bool {
		statuses, _ := o.Status()
		return statuses[models.PartitionPA].State == models.SyncIdle
	}, time.Second, 5*time.Millisecond)
	assert.False(t, o.retry.Armed(), "no timer left after a successful retry")
}

func TestOfflinePush_ResumesOnReconnect(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})
	o.SetOnline(false)

	require.NoError(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
	}))
	assert.Equal(t, 0, api.pushCount(models.PartitionPA), "no network while offline")
	assert.False(t, o.retry.Armed(), "no timer armed while offline")
	assert.True(t, o.PushPending(), "offline mutation must surface as pending, not pushed")

	o.SetOnline(true)
	require.Eventually(t, func() bool { return api.pushCount(models.PartitionPA) == 1 },
		time.Second, 5*time.Millisecond, "pending push must resume without manual re-invocation")
	require.Eventually(t, func() bool { return !o.PushPending() },
		time.Second, 5*time.Millisecond, "flag clears once the resumed push lands")
}

func TestUndo_RestoresPreviousStateAndPushes(t *testing.T) {
	api := newFakeRemote()
	o, bus := newTestOrchestrator(t, api, &memBackup{})

	require.NoError(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
	}))
	require.NoError(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
		StartDate: "2025-03-01",
	}))
	require.Len(t, o.Records(), 2)

	pushesBefore := api.pushCount(models.PartitionPA)
	require.NoError(t, o.Undo(context.Background()))

	require.Len(t, o.Records(), 1, "undo must restore the pre-mutation state")
	assert.Equal(t, pushesBefore+1, api.pushCount(models.PartitionPA), "undo is a durable mutation")

	log := bus.Log()
	assert.Equal(t, "undo", log[len(log)-1].Action)
}

func TestUndo_EmptyStack(t *testing.T) {
	o, _ := newTestOrchestrator(t, newFakeRemote(), &memBackup{})
	assert.ErrorIs(t, o.Undo(context.Background()), common.ErrNothingToUndo)
}

func TestUndo_DepthBoundedAtTen(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	for i := 0; i < 11; i++ {
		require.NoError(t, o.SaveRecord(context.Background(), models.PermitRecord{
			Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
			ActNumber: fmt.Sprintf("%d", i),
		}))
	}
	assert.Equal(t, 10, o.UndoDepth())
}

func TestPeerEvents_DebouncedIntoOneRefresh(t *testing.T) {
	api := newFakeRemote()
	api.rows[models.PartitionPA] = [][]string{
		paFixtureRow("Juan Pérez", "12345678-5", "101", "2025-02-10"),
	}
	o, bus := newTestOrchestrator(t, api, &memBackup{})

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), models.SyncEvent{
			Scope: models.ScopeRecords, Action: "record_saved", OriginClientID: "peer-1",
		}))
	}

	require.Eventually(t, func() bool { return api.fetchCalls.Load() == 2 },
		time.Second, 5*time.Millisecond, "burst must collapse into one two-partition fetch")

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), api.fetchCalls.Load(), "no extra refreshes after the burst")

	require.Len(t, o.Records(), 1)
}

func TestPeerEvents_OwnOriginIgnored(t *testing.T) {
	api := newFakeRemote()
	o, bus := newTestOrchestrator(t, api, &memBackup{})

	require.NoError(t, bus.Publish(context.Background(), models.SyncEvent{
		Scope: models.ScopeRecords, Action: "record_saved", OriginClientID: o.clientID,
	}))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), api.fetchCalls.Load(), "own events must not trigger a re-fetch")
}

func TestAddEmployee_DuplicateAndConflictBlocked(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	require.NoError(t, o.AddEmployee(context.Background(), models.Employee{
		RUT: "12.345.678-5", DisplayName: "Juan Pérez",
	}))
	assert.Equal(t, 1, api.empPushCount())

	err := o.AddEmployee(context.Background(), models.Employee{
		RUT: "12345678-5", DisplayName: "Otro Juan",
	})
	assert.ErrorIs(t, err, common.ErrDuplicateRUT)

	// a historical record under another name blocks a new roster entry
	o.mu.Lock()
	o.records = []models.PermitRecord{{ID: "r1", RUT: "20347878K", DisplayName: "Ana Soto"}}
	o.mu.Unlock()
	err = o.AddEmployee(context.Background(), models.Employee{
		RUT: "20347878-K", DisplayName: "Ana Distinta",
	})
	assert.ErrorIs(t, err, common.ErrIdentityConflict)
}

func TestUpdateEmployee_RenameDoesNotSelfConflict(t *testing.T) {
	api := newFakeRemote()
	o, _ := newTestOrchestrator(t, api, &memBackup{})
	o.mu.Lock()
	o.employees = []models.Employee{{RUT: "123456785", DisplayName: "Juan Pérez"}}
	o.records = []models.PermitRecord{{ID: "r1", RUT: "123456785", DisplayName: "Juan Pérez"}}
	o.mu.Unlock()

	require.NoError(t, o.UpdateEmployee(context.Background(), models.Employee{
		RUT: "12345678-5", DisplayName: "Juan P. Pérez Rojas",
	}))
	assert.Equal(t, "Juan P. Pérez Rojas", o.Employees()[0].DisplayName)
}

func TestRefreshEmployees_ParsesAndPersists(t *testing.T) {
	api := newFakeRemote()
	api.empRows = [][]string{{"12.345.678-5", "Juan Pérez", "Docencia"}}
	store := &memBackup{}
	o, _ := newTestOrchestrator(t, api, store)

	roster, err := o.RefreshEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, roster.Employees, 1)
	assert.Equal(t, "123456785", roster.Employees[0].RUT)
	assert.False(t, roster.Degraded)

	_, empStatus := o.Status()
	assert.Equal(t, models.SyncIdle, empStatus.State)

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.hasEmps
	}, time.Second, 10*time.Millisecond)
}

func TestRefreshEmployees_FallsBackToBackupDegraded(t *testing.T) {
	api := newFakeRemote()
	api.empFetchErr = fmt.Errorf("%w: 503", common.ErrUnavailable)
	store := &memBackup{}
	require.NoError(t, store.SaveEmployees(context.Background(), []models.Employee{
		{RUT: "123456785", DisplayName: "Juan Pérez"},
	}))
	o, _ := newTestOrchestrator(t, api, store)

	roster, err := o.RefreshEmployees(context.Background())
	require.NoError(t, err)
	assert.True(t, roster.Degraded, "a backup-served roster must be flagged stale")
	assert.False(t, roster.BackupAt.IsZero(), "the staleness hint carries the backup time")
	require.Len(t, roster.Employees, 1)
	assert.Equal(t, "Juan Pérez", roster.Employees[0].DisplayName)

	_, empStatus := o.Status()
	assert.Equal(t, models.SyncError, empStatus.State)
}

func TestRefreshEmployees_FetchFailureWithEmptyBackup(t *testing.T) {
	api := newFakeRemote()
	api.empFetchErr = fmt.Errorf("%w: 503", common.ErrUnavailable)
	o, _ := newTestOrchestrator(t, api, &memBackup{})

	_, err := o.RefreshEmployees(context.Background())
	assert.ErrorIs(t, err, common.ErrNoBackup)
}

func TestOnErrorCallback_ReceivesPushFailures(t *testing.T) {
	api := newFakeRemote()
	api.setPushErr(models.PartitionPA, errors.New("quota exceeded"))

	var mu sync.Mutex
	var scopes []string
	bus := events.NewMemoryBus()
	o := New(Options{
		API:        api,
		Backup:     &memBackup{},
		Bus:        bus,
		RetryDelay: time.Hour,
		OnError: func(scope string, err error) {
			mu.Lock()
			scopes = append(scopes, scope)
			mu.Unlock()
		},
	})
	t.Cleanup(o.Close)

	require.Error(t, o.SaveRecord(context.Background(), models.PermitRecord{
		Partition: models.PartitionPA, RUT: "12345678-5", DisplayName: "Juan Pérez",
	}))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, scopes)
	assert.Equal(t, "push", scopes[0])
}
