package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
)

const testRUT = "123456785"

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "juan perez", NormalizeName("JUAN PEREZ"))
	assert.Equal(t, "juan perez", NormalizeName("Juán  Pérez"))
	assert.Equal(t, "maria jose nunez", NormalizeName("  María José   Núñez "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestFind_NoConflictOnFormattingVariance(t *testing.T) {
	employees := []models.Employee{{RUT: testRUT, DisplayName: "Juán Pérez"}}

	assert.Nil(t, Find(testRUT, "JUAN PEREZ", employees, nil, Ignore{}))
	assert.Nil(t, Find(testRUT, "Juán Pérez", employees, nil, Ignore{}))
	assert.Nil(t, Find(testRUT, "juan  perez", employees, nil, Ignore{}))
}

func TestFind_EmployeeConflict(t *testing.T) {
	employees := []models.Employee{{RUT: testRUT, DisplayName: "Juan Pérez"}}

	c := Find(testRUT, "Pedro Soto", employees, nil, Ignore{})
	require.NotNil(t, c)
	assert.Equal(t, SourceEmployees, c.Source)
	assert.Equal(t, "Juan Pérez", c.ExistingName)
	assert.Equal(t, testRUT, c.RUT)
}

func TestFind_RecordConflict(t *testing.T) {
	records := []models.PermitRecord{
		{ID: "PA-0-1", RUT: testRUT, DisplayName: "Juan Pérez"},
	}

	c := Find(testRUT, "Pedro Soto", nil, records, Ignore{})
	require.NotNil(t, c)
	assert.Equal(t, SourceRecords, c.Source)
	assert.Equal(t, "PA-0-1", c.RecordID)
}

func TestFind_EmployeeTakesPriorityOverRecord(t *testing.T) {
	employees := []models.Employee{{RUT: testRUT, DisplayName: "Juan Pérez"}}
	records := []models.PermitRecord{
		{ID: "PA-0-1", RUT: testRUT, DisplayName: "Otro Nombre"},
	}

	c := Find(testRUT, "Pedro Soto", employees, records, Ignore{})
	require.NotNil(t, c)
	assert.Equal(t, SourceEmployees, c.Source)
}

func TestFind_IgnoreSuppressesSelfConflict(t *testing.T) {
	employees := []models.Employee{{RUT: testRUT, DisplayName: "Juan Pérez"}}
	records := []models.PermitRecord{
		{ID: "PA-0-1", RUT: testRUT, DisplayName: "Juan Pérez"},
	}

	// editing the employee itself: new name, same rut
	assert.Nil(t, Find(testRUT, "Juan P. Pérez", employees, nil,
		Ignore{EmployeeRUT: testRUT}))

	// editing a record: suppress by record id, but the employee still conflicts
	c := Find(testRUT, "Juan P. Pérez", employees, records, Ignore{RecordID: "PA-0-1"})
	require.NotNil(t, c)
	assert.Equal(t, SourceEmployees, c.Source)

	// suppress by stored name
	assert.Nil(t, Find(testRUT, "Juan P. Pérez", employees, records,
		Ignore{EmployeeName: "Juan Pérez", RecordID: "PA-0-1"}))
}

func TestFind_IgnoreEmployeeRUTCoversRecords(t *testing.T) {
	// renaming an employee must not conflict with that employee's own record
	// history, even when the stored record names differ from both names
	records := []models.PermitRecord{
		{ID: "PA-0-1", RUT: testRUT, DisplayName: "Juan Pérez"},
		{ID: "PA-1-1", RUT: testRUT, DisplayName: "J. Pérez Rojas"},
	}

	assert.Nil(t, Find(testRUT, "Juan Pablo Pérez", nil, records,
		Ignore{EmployeeRUT: testRUT}))

	// a different identity's records still conflict
	other := []models.PermitRecord{
		{ID: "PA-2-1", RUT: testRUT, DisplayName: "Ana Soto"},
	}
	c := Find(testRUT, "Juan Pablo Pérez", nil, other, Ignore{EmployeeRUT: "999999999"})
	require.NotNil(t, c)
	assert.Equal(t, SourceRecords, c.Source)
}

func TestFind_DifferentIdentityNeverConflicts(t *testing.T) {
	employees := []models.Employee{{RUT: "111111111", DisplayName: "Juan Pérez"}}
	assert.Nil(t, Find(testRUT, "Pedro Soto", employees, nil, Ignore{}))
}
