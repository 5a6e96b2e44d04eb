package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/parse"
)

// Add interactively collects a new permit record and saves it. Dates accept
// any supported input format (ISO, DD/MM/YYYY, Spanish long form) and are
// normalized before saving.
func (a *App) Add(ctx context.Context) error {
	partition, err := a.askPartition()
	if err != nil {
		return err
	}

	rec := models.PermitRecord{Partition: partition}

	if rec.RUT, err = GetSimpleText(a.reader, "RUT", os.Stdout); err != nil {
		return err
	}
	if rec.DisplayName, err = GetSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if rec.ActNumber, err = GetSimpleText(a.reader, "Act number", os.Stdout); err != nil {
		return err
	}
	if rec.DecreeDate, err = a.askDate("Decree date"); err != nil {
		return err
	}
	if rec.StartDate, err = a.askDate("Start date"); err != nil {
		return err
	}
	if rec.EndDate, err = a.askDate("End date"); err != nil {
		return err
	}
	if rec.RequestedDays, err = a.askNumber("Requested days"); err != nil {
		return err
	}
	if rec.EntitlementDays, err = a.askNumber("Entitlement days"); err != nil {
		return err
	}

	if partition == models.PartitionFL {
		if rec.FirstPeriod, err = a.askPeriod("First vacation period"); err != nil {
			return err
		}
		second, err := GetSimpleText(a.reader, "Second vacation period? (y/N)", os.Stdout)
		if err != nil {
			return err
		}
		if strings.EqualFold(second, "y") {
			if rec.SecondPeriod, err = a.askPeriod("Second vacation period"); err != nil {
				return err
			}
		}
	}

	if err := a.engine.SaveRecord(ctx, rec); err != nil {
		return err
	}
	a.reportPushed("Record saved")
	return nil
}

// AddEmployee interactively collects a new roster entry.
func (a *App) AddEmployee(ctx context.Context) error {
	var emp models.Employee
	var err error

	if emp.RUT, err = GetSimpleText(a.reader, "RUT", os.Stdout); err != nil {
		return err
	}
	if emp.DisplayName, err = GetSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if emp.Department, err = GetSimpleText(a.reader, "Department", os.Stdout); err != nil {
		return err
	}

	if err := a.engine.AddEmployee(ctx, emp); err != nil {
		return err
	}
	fmt.Println("Employee added and pushed.")
	return nil
}

// reportPushed tells the user what happened to a record mutation: pushed, or
// accepted locally with the push deferred until connectivity returns.
func (a *App) reportPushed(what string) {
	if a.engine.PushPending() {
		fmt.Printf("%s; push pending until connectivity returns.\n", what)
		return
	}
	fmt.Printf("%s and pushed.\n", what)
}

func (a *App) askPartition() (models.Partition, error) {
	raw, err := GetSimpleText(a.reader, "Partition (pa = administrative leave, fl = statutory vacation)", os.Stdout)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(raw) {
	case "pa":
		return models.PartitionPA, nil
	case "fl":
		return models.PartitionFL, nil
	}
	return "", fmt.Errorf("unknown partition %q (want pa or fl)", raw)
}

func (a *App) askDate(prompt string) (string, error) {
	raw, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}
	d := parse.Date(raw)
	if d == "" {
		return "", fmt.Errorf("unparseable date %q", raw)
	}
	return d, nil
}

func (a *App) askNumber(prompt string) (float64, error) {
	raw, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	const sentinel = -1e9
	v := parse.Number(raw, sentinel)
	if v == sentinel {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

func (a *App) askPeriod(label string) (models.PeriodBalance, error) {
	fmt.Println(label)
	var p models.PeriodBalance
	raw, err := GetSimpleText(a.reader, "  Year", os.Stdout)
	if err != nil {
		return p, err
	}
	p.Year = parse.PeriodYear(raw, time.Now())

	if p.Available, err = a.askNumber("  Days available"); err != nil {
		return p, err
	}
	if p.Requested, err = a.askNumber("  Days requested"); err != nil {
		return p, err
	}
	if p.Final, err = a.askNumber("  Days remaining"); err != nil {
		return p, err
	}
	return p, nil
}
