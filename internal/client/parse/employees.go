package parse

import (
	"fmt"
	"strings"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/rut"
)

// Employee row layout: rut, display name, department.
const (
	empColRUT = iota
	empColName
	empColDepartment
)

// Employees converts raw roster rows into employees. Rows with a malformed
// rut are skipped with a warning; a duplicate rut keeps the first occurrence.
func Employees(rows [][]string) ([]models.Employee, []models.ParseWarning) {
	var warnings []models.ParseWarning
	seen := make(map[string]struct{}, len(rows))

	employees := make([]models.Employee, 0, len(rows))
	for i, row := range rows {
		canonical, ok := rut.Canonicalize(cell(row, empColRUT))
		if !ok {
			warnings = append(warnings, models.ParseWarning{
				Row:     fmt.Sprintf("row %d", i+1),
				Message: fmt.Sprintf("malformed rut %q; row skipped", cell(row, empColRUT)),
			})
			continue
		}
		if _, dup := seen[canonical]; dup {
			warnings = append(warnings, models.ParseWarning{
				Row:     fmt.Sprintf("row %d", i+1),
				Message: fmt.Sprintf("duplicate rut %s; first occurrence kept", canonical),
			})
			continue
		}
		seen[canonical] = struct{}{}

		employees = append(employees, models.Employee{
			RUT:         canonical,
			DisplayName: strings.TrimSpace(cell(row, empColName)),
			Department:  strings.TrimSpace(cell(row, empColDepartment)),
		})
	}
	return employees, warnings
}

// EmployeeRows serializes the roster back into the sheet layout.
func EmployeeRows(employees []models.Employee) [][]string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.RUT, e.DisplayName, e.Department})
	}
	return rows
}
