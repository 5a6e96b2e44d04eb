package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/config"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/events"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/remote"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/repositories/backup"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/syncer"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	engine *syncer.Orchestrator
	api    remote.Client
	db     *sql.DB
	reader *bufio.Reader

	mu       sync.Mutex
	warnings []models.ParseWarning
	degraded bool
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	store, db, err := backup.Open(ctx, c.BackupDSN)
	if err != nil {
		return nil, fmt.Errorf("opening backup store: %w", err)
	}

	api := remote.NewHTTPClient(remote.Config{
		Endpoints: map[models.Partition]string{
			models.PartitionPA: c.RecordsEndpointPA,
			models.PartitionFL: c.RecordsEndpointFL,
		},
		EmployeesEndpoint: c.EmployeesEndpoint,
		SheetID:           c.SheetID,
		BearerToken:       c.BearerToken,
		Timeout:           c.RequestTimeout,
	})

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	engine := syncer.New(syncer.Options{
		API:            api,
		Backup:         store,
		Bus:            events.NewMemoryBus(),
		Logger:         log,
		BearerToken:    c.BearerToken,
		RetryDelay:     c.RetryDelay,
		DebounceWindow: c.DebounceWindow,
		ValidatePush:   c.ValidatePush,
		OnError: func(scope string, err error) {
			fmt.Printf("sync error (%s): %v\n", scope, err)
		},
	})

	return &App{
		config: c,
		engine: engine,
		api:    api,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	defer a.engine.Close()

	go syncer.StartOnlineWatcher(ctx, a.api, a.engine, a.config.OnlineCheckInterval, logging.NewNop())

	a.Root(ctx)
}

// setFetchOutcome remembers the warnings and degraded flag of the most recent
// refresh so list/status can report them later.
func (a *App) setFetchOutcome(result models.FetchResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = result.Warnings
	a.degraded = result.Degraded
}

func (a *App) fetchOutcome() ([]models.ParseWarning, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.warnings, a.degraded
}
