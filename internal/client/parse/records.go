package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/rut"
)

// Column layout of a record row. Both partitions share the first eight
// columns; FL rows append two period-balance blocks.
//
//	0 display name   4 start date
//	1 rut            5 end date
//	2 act number     6 requested days
//	3 decree date    7 entitlement days
//
// FL only:
//
//	 8 period 1 year   12 period 2 year
//	 9 p1 available    13 p2 available
//	10 p1 requested    14 p2 requested
//	11 p1 final        15 p2 final
const (
	colName = iota
	colRUT
	colActNumber
	colDecreeDate
	colStartDate
	colEndDate
	colRequestedDays
	colEntitlementDays
	colP1Year
	colP1Available
	colP1Requested
	colP1Final
	colP2Year
	colP2Available
	colP2Requested
	colP2Final
)

// Records converts raw rows of one partition into canonical records.
// The batch always completes; every anomaly becomes a warning. Rows are
// returned in ascending chronological order (see orderAscending) and ids are
// deterministic over (partition, row index, fetchedAt).
func Records(rows [][]string, partition models.Partition, fetchedAt time.Time) ([]models.PermitRecord, []models.ParseWarning) {
	var warnings []models.ParseWarning
	warn := func(row int, format string, args ...any) {
		warnings = append(warnings, models.ParseWarning{
			Row:     fmt.Sprintf("row %d", row+1),
			Message: fmt.Sprintf(format, args...),
		})
	}

	if !orderAscending(rows) {
		reverse(rows)
		warnings = append(warnings, models.ParseWarning{
			Row:     "batch",
			Message: "rows arrived newest-first; order reversed",
		})
	}

	records := make([]models.PermitRecord, 0, len(rows))
	for i, row := range rows {
		rec := models.PermitRecord{
			ID:        fmt.Sprintf("%s-%d-%d", partition, i, fetchedAt.UnixMilli()),
			Partition: partition,
			CreatedAt: fetchedAt,
		}

		rec.DisplayName = strings.TrimSpace(cell(row, colName))

		rawRut := cell(row, colRUT)
		if canonical, ok := rut.Canonicalize(rawRut); ok {
			rec.RUT = canonical
		} else {
			rec.RUT = strings.TrimSpace(rawRut)
			if rec.RUT != "" {
				warn(i, "malformed rut %q", rawRut)
			}
		}

		rec.ActNumber = strings.TrimSpace(cell(row, colActNumber))
		rec.DecreeDate = parseDateCell(row, colDecreeDate, i, "decree date", warn)
		rec.StartDate = parseDateCell(row, colStartDate, i, "start date", warn)
		rec.EndDate = parseDateCell(row, colEndDate, i, "end date", warn)

		rec.RequestedDays = parseNumberCell(row, colRequestedDays, i, "requested days", warn)
		rec.EntitlementDays = parseNumberCell(row, colEntitlementDays, i, "entitlement days", warn)

		if partition == models.PartitionFL {
			rec.FirstPeriod = models.PeriodBalance{
				Year:      PeriodYear(cell(row, colP1Year), fetchedAt),
				Available: Number(cell(row, colP1Available), 0),
				Requested: Number(cell(row, colP1Requested), 0),
				Final:     Number(cell(row, colP1Final), 0),
			}
			rec.SecondPeriod = secondPeriod(row, i, fetchedAt, warn)
		}

		records = append(records, rec)
	}

	return records, warnings
}

// secondPeriod applies the all-or-nothing rule: a second period block is
// either entirely populated or entirely absent. A half-filled block is
// dropped with a warning rather than kept partially.
func secondPeriod(row []string, i int, fetchedAt time.Time, warn func(int, string, ...any)) models.PeriodBalance {
	cells := []string{
		cell(row, colP2Year), cell(row, colP2Available),
		cell(row, colP2Requested), cell(row, colP2Final),
	}
	filled := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			filled++
		}
	}
	if filled == 0 {
		return models.PeriodBalance{}
	}
	if filled < len(cells) {
		warn(i, "second vacation period partially filled; ignored")
		return models.PeriodBalance{}
	}
	return models.PeriodBalance{
		Year:      PeriodYear(cells[0], fetchedAt),
		Available: Number(cells[1], 0),
		Requested: Number(cells[2], 0),
		Final:     Number(cells[3], 0),
	}
}

// orderAscending infers row order by comparing the first and last rows'
// decree dates, falling back to their act numbers when a date is missing.
// It reports false only when the order is clearly descending.
func orderAscending(rows [][]string) bool {
	if len(rows) < 2 {
		return true
	}
	first, last := rows[0], rows[len(rows)-1]

	fd, ld := Date(cell(first, colDecreeDate)), Date(cell(last, colDecreeDate))
	if fd != "" && ld != "" {
		return fd <= ld
	}

	fa := Number(cell(first, colActNumber), -1)
	la := Number(cell(last, colActNumber), -1)
	if fa >= 0 && la >= 0 {
		return fa <= la
	}
	return true
}

func parseDateCell(row []string, col, i int, field string, warn func(int, string, ...any)) string {
	raw := strings.TrimSpace(cell(row, col))
	if raw == "" {
		return ""
	}
	d := Date(raw)
	if d == "" {
		warn(i, "unparseable %s %q", field, raw)
	}
	return d
}

func parseNumberCell(row []string, col, i int, field string, warn func(int, string, ...any)) float64 {
	raw := strings.TrimSpace(cell(row, col))
	if raw == "" {
		return 0
	}
	const sentinel = -1e9
	v := Number(raw, sentinel)
	if v == sentinel {
		warn(i, "non-numeric %s %q", field, raw)
		return 0
	}
	return v
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func reverse(rows [][]string) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
