package parse

import (
	"strconv"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

// Rows serializes the records belonging to one partition into the row shape
// the remote endpoint expects. Records of other partitions are skipped, so
// the full in-memory set can be handed in as-is.
func Rows(records []models.PermitRecord, partition models.Partition) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if r.Partition != partition {
			continue
		}
		row := []string{
			r.DisplayName,
			r.RUT,
			r.ActNumber,
			r.DecreeDate,
			r.StartDate,
			r.EndDate,
			num(r.RequestedDays),
			num(r.EntitlementDays),
		}
		if partition == models.PartitionFL {
			row = append(row,
				year(r.FirstPeriod.Year),
				num(r.FirstPeriod.Available),
				num(r.FirstPeriod.Requested),
				num(r.FirstPeriod.Final),
			)
			if r.SecondPeriod.IsZero() {
				row = append(row, "", "", "", "")
			} else {
				row = append(row,
					year(r.SecondPeriod.Year),
					num(r.SecondPeriod.Available),
					num(r.SecondPeriod.Requested),
					num(r.SecondPeriod.Final),
				)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
