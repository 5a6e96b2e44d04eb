package cli

import (
	"context"
	"fmt"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Delete removes one record by id and pushes the change.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.engine.DeleteRecord(ctx, id); err != nil {
		return err
	}
	a.reportPushed("Record deleted")
	return nil
}

// DeleteEmployee removes one roster entry by rut and pushes the change.
func (a *App) DeleteEmployee(ctx context.Context, rut string) error {
	if err := a.engine.DeleteEmployee(ctx, rut); err != nil {
		return err
	}
	fmt.Println("Employee deleted and pushed.")
	return nil
}

// Undo reverts the most recent record mutation and pushes the restored state.
func (a *App) Undo(ctx context.Context) error {
	if err := a.engine.Undo(ctx); err != nil {
		return err
	}
	a.reportPushed("Reverted")
	fmt.Printf("%d undo step(s) left.\n", a.engine.UndoDepth())
	return nil
}

// Sync pushes the full current dataset.
func (a *App) Sync(ctx context.Context) error {
	if err := a.engine.Push(ctx); err != nil {
		return err
	}
	if a.engine.PushPending() {
		fmt.Println("Offline; push pending until connectivity returns.")
		return nil
	}
	fmt.Println("Pushed.")
	return nil
}

// Refresh re-fetches both record partitions and the roster.
func (a *App) Refresh(ctx context.Context) error {
	result, err := a.engine.Refresh(ctx)
	if err != nil {
		return err
	}
	a.setFetchOutcome(result)

	if roster, err := a.engine.RefreshEmployees(ctx); err != nil {
		fmt.Println("Roster refresh failed:", err.Error())
	} else if roster.Degraded {
		fmt.Printf("Roster unavailable; loaded backup from %s.\n",
			roster.BackupAt.Format("2006-01-02 15:04"))
	}

	if result.Degraded {
		fmt.Printf("Remote unavailable; loaded backup from %s.\n",
			result.BackupAt.Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("Fetched %d record(s).\n", len(result.Records))
	}
	printWarnings(result.Warnings)
	return nil
}

// Status prints the per-partition sync state plus the roster's.
func (a *App) Status(ctx context.Context) error {
	statuses, empStatus := a.engine.Status()
	for _, p := range models.Partitions {
		printStatus(string(p), statuses[p])
	}
	printStatus("employees", empStatus)
	return nil
}

func printStatus(name string, s models.ModuleSyncStatus) {
	line := fmt.Sprintf("%-10s %s", name, s.State)
	if !s.LastSuccess.IsZero() {
		line += fmt.Sprintf(", last success %s", s.LastSuccess.Format("2006-01-02 15:04:05"))
	}
	if s.LastError != "" {
		line += fmt.Sprintf(", last error: %s", s.LastError)
	}
	fmt.Println(line)
}
