package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/common"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/dbx"
)

const (
	keyRecords   = "records"
	keyEmployees = "employees"
)

// SQLiteStore implements Store on an sqlite handle. Writes replace a blob
// wholesale inside one transaction (see save).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a new SQLiteStore bound to the given handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveRecords overwrites the records blob wholesale.
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []models.PermitRecord) error {
	return s.save(ctx, keyRecords, records)
}

// LoadRecords returns the last saved record set and its save time.
func (s *SQLiteStore) LoadRecords(ctx context.Context) ([]models.PermitRecord, time.Time, error) {
	var records []models.PermitRecord
	savedAt, err := s.load(ctx, keyRecords, &records)
	if err != nil {
		return nil, time.Time{}, err
	}
	return records, savedAt, nil
}

// SaveEmployees overwrites the employees blob wholesale.
func (s *SQLiteStore) SaveEmployees(ctx context.Context, employees []models.Employee) error {
	return s.save(ctx, keyEmployees, employees)
}

// LoadEmployees returns the last saved roster and its save time.
func (s *SQLiteStore) LoadEmployees(ctx context.Context) ([]models.Employee, time.Time, error) {
	var employees []models.Employee
	savedAt, err := s.load(ctx, keyEmployees, &employees)
	if err != nil {
		return nil, time.Time{}, err
	}
	return employees, savedAt, nil
}

// save replaces one blob wholesale: the old row is dropped and the new one
// inserted inside a single transaction, so a concurrent load sees either the
// previous backup or the new one, never a missing or half-written blob.
func (s *SQLiteStore) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode backup %s: %w", key, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM backup_blobs WHERE key = ?`, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO backup_blobs (key, payload, saved_at) VALUES (?, ?, ?)`,
			key, payload, time.Now().UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save backup %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) load(ctx context.Context, key string, v any) (time.Time, error) {
	var payload []byte
	var savedAt time.Time

	query := `SELECT payload, saved_at FROM backup_blobs WHERE key = ?`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load backup %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode backup %s: %w", key, err)
	}
	return savedAt, nil
}
