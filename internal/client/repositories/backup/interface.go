// Package backup persists the last-known-good dataset locally so a fetch
// attempted while offline (or a failed one) can fall back to something
// usable. Blobs are overwritten wholesale on every save, never patched.
package backup

import (
	"context"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Store is the local last-known-good cache. Loads report the time the blob
// was saved so degraded results can carry a staleness hint; an empty store
// returns common.ErrNotFound.
type Store interface {
	SaveRecords(ctx context.Context, records []models.PermitRecord) error
	LoadRecords(ctx context.Context) ([]models.PermitRecord, time.Time, error)

	SaveEmployees(ctx context.Context, employees []models.Employee) error
	LoadEmployees(ctx context.Context) ([]models.Employee, time.Time, error)
}
