package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/rut"
)

// maxWarningLines caps how many parse warnings are printed; the rest is
// summarized in one line.
const maxWarningLines = 20

// List prints the current record set, optionally filtered to one partition
// ("pa" or "fl").
func (a *App) List(ctx context.Context, args []string) error {
	var filter models.Partition
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "pa":
			filter = models.PartitionPA
		case "fl":
			filter = models.PartitionFL
		default:
			return fmt.Errorf("unknown partition %q (want pa or fl)", args[0])
		}
	}

	records := a.engine.Records()
	shown := 0
	for _, r := range records {
		if filter != "" && r.Partition != filter {
			continue
		}
		shown++
		fmt.Printf("%-38s %s %-12s %-30s %s .. %s (%s days)\n",
			r.ID, r.Partition, rut.FormatForDisplay(r.RUT), r.DisplayName,
			r.StartDate, r.EndDate, formatDays(r.RequestedDays))
		if r.Partition == models.PartitionFL && !r.SecondPeriod.IsZero() {
			fmt.Printf("%-38s   periods: %d (%s left), %d (%s left)\n", "",
				r.FirstPeriod.Year, formatDays(r.FirstPeriod.Final),
				r.SecondPeriod.Year, formatDays(r.SecondPeriod.Final))
		}
	}
	fmt.Printf("%d record(s)\n", shown)

	warnings, degraded := a.fetchOutcome()
	if degraded {
		fmt.Println("Note: showing data from the local backup.")
	}
	printWarnings(warnings)
	return nil
}

// ListEmployees prints the roster.
func (a *App) ListEmployees(ctx context.Context) error {
	employees := a.engine.Employees()
	for _, e := range employees {
		fmt.Printf("%-12s %-30s %s\n", rut.FormatForDisplay(e.RUT), e.DisplayName, e.Department)
	}
	fmt.Printf("%d employee(s)\n", len(employees))
	return nil
}

func printWarnings(warnings []models.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("%d parse warning(s):\n", len(warnings))
	for i, w := range warnings {
		if i == maxWarningLines {
			fmt.Printf("  … and %d more\n", len(warnings)-maxWarningLines)
			break
		}
		fmt.Printf("  %s: %s\n", w.Row, w.Message)
	}
}

func formatDays(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
