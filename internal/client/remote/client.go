// Package remote talks to the spreadsheet-backed HTTP API, one endpoint per
// record partition plus an employees variant. It only moves raw rows;
// parsing and serialization live in the parse package.
package remote

import (
	"context"
	"strings"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Client is the per-partition fetch/push surface of the remote store.
//
// Error contract: transport-level failures wrap common.ErrUnavailable and
// are candidates for offline fallback; a well-formed response with
// success=false surfaces as *APIError. Both are retryable.
type Client interface {
	FetchRows(ctx context.Context, partition models.Partition) ([][]string, error)
	PushRows(ctx context.Context, partition models.Partition, rows [][]string, validate bool) error

	FetchEmployeeRows(ctx context.Context) ([][]string, error)
	PushEmployeeRows(ctx context.Context, rows [][]string) error

	// Ping probes reachability; it is the online-status watcher's input.
	Ping(ctx context.Context) error
}

// APIError is a response the remote delivered but refused: success=false,
// optionally with per-row validation messages.
type APIError struct {
	Message          string
	ValidationErrors []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "remote rejected the request"
	}
	if len(e.ValidationErrors) > 0 {
		msg += ": " + strings.Join(e.ValidationErrors, "; ")
	}
	return msg
}
