package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

func TestEmployees(t *testing.T) {
	rows := [][]string{
		{"12.345.678-5", "Juan Pérez", "Docencia"},
		{"garbage", "Sin Rut", ""},
		{"12345678-5", "Juan Duplicado", "Administración"},
		{"20.347.878-k", "Ana Soto"},
	}

	employees, warnings := Employees(rows)
	require.Len(t, employees, 2)

	assert.Equal(t, models.Employee{RUT: "123456785", DisplayName: "Juan Pérez", Department: "Docencia"}, employees[0])
	assert.Equal(t, models.Employee{RUT: "20347878K", DisplayName: "Ana Soto"}, employees[1])

	require.Len(t, warnings, 2)
	assert.Equal(t, "row 2", warnings[0].Row)
	assert.Contains(t, warnings[0].Message, "malformed rut")
	assert.Equal(t, "row 3", warnings[1].Row)
	assert.Contains(t, warnings[1].Message, "duplicate rut")
}

func TestEmployeeRows_RoundTrip(t *testing.T) {
	employees := []models.Employee{
		{RUT: "123456785", DisplayName: "Juan Pérez", Department: "Docencia"},
		{RUT: "20347878K", DisplayName: "Ana Soto"},
	}

	parsed, warnings := Employees(EmployeeRows(employees))
	assert.Empty(t, warnings)
	assert.Equal(t, employees, parsed)
}
