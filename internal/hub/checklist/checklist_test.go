package checklist

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrhub/internal/hub/models"
	"hrhub/internal/hub/validator"
)

func newEngine() *Engine {
	return NewEngine(validator.NewRegistry(), slog.Default())
}

func completeUSA(id float64) models.Employee {
	return models.Employee{
		"id": id, "name": "John", "last_name": "Doe", "country": "USA",
		"ssn": "123-45-6789", "salary": float64(75000), "address": "123 Main St",
	}
}

func TestBuildEmployeeChecklistCompleteUSA(t *testing.T) {
	c := newEngine().BuildEmployeeChecklist(completeUSA(1))

	assert.Equal(t, 3, c.TotalFields)
	assert.Equal(t, 3, c.CompletedFields)
	assert.Equal(t, float64(100), c.CompletionRate)
	assert.True(t, c.IsComplete)
	assert.Equal(t, "John Doe", c.Name)
	require.NotNil(t, c.EmployeeID)
	assert.Equal(t, int64(1), *c.EmployeeID)
}

func TestBuildEmployeeChecklistPartial(t *testing.T) {
	c := newEngine().BuildEmployeeChecklist(models.Employee{
		"id": float64(2), "name": "Jane", "last_name": "Roe", "country": "USA",
		"salary": float64(50000),
	})

	assert.Equal(t, 3, c.TotalFields)
	assert.Equal(t, 1, c.CompletedFields)
	assert.Equal(t, 33.33, c.CompletionRate)
	assert.False(t, c.IsComplete)
	assert.False(t, c.Fields["ssn"].Complete)
	assert.False(t, c.Fields["address"].Complete)
}

func TestBuildEmployeeChecklistGermany(t *testing.T) {
	en := newEngine()

	complete := en.BuildEmployeeChecklist(models.Employee{
		"id": float64(3), "name": "Anna", "last_name": "Schmidt", "country": "Germany",
		"salary": float64(60000), "goal": "onboarding", "tax_id": "DE123456789",
	})
	assert.True(t, complete.IsComplete)
	assert.Equal(t, float64(100), complete.CompletionRate)

	badTax := en.BuildEmployeeChecklist(models.Employee{
		"id": float64(4), "name": "Max", "last_name": "Muster", "country": "Germany",
		"salary": float64(60000), "goal": "onboarding", "tax_id": "DE12345678",
	})
	assert.Equal(t, 2, badTax.CompletedFields)
	assert.False(t, badTax.Fields["tax_id"].Complete)
	assert.True(t, badTax.Fields["salary"].Complete)
	assert.True(t, badTax.Fields["goal"].Complete)
}

// Unknown countries yield an empty checklist, not an error, and are never
// reported complete.
func TestBuildEmployeeChecklistUnknownCountry(t *testing.T) {
	c := newEngine().BuildEmployeeChecklist(models.Employee{
		"id": float64(5), "name": "Pierre", "last_name": "Martin", "country": "France",
	})

	assert.Equal(t, 0, c.TotalFields)
	assert.Equal(t, 0, c.CompletedFields)
	assert.Equal(t, float64(0), c.CompletionRate)
	assert.False(t, c.IsComplete)
	assert.Empty(t, c.Fields)
	assert.Equal(t, "France", c.Country)
}

func TestBuildEmployeeChecklistMissingCountry(t *testing.T) {
	c := newEngine().BuildEmployeeChecklist(models.Employee{"id": float64(6)})
	assert.Equal(t, "UNKNOWN", c.Country)
	assert.Equal(t, 0, c.TotalFields)
}

func TestBuildReportEmpty(t *testing.T) {
	r := newEngine().BuildReport(nil)

	assert.Equal(t, 0, r.Summary.TotalEmployees)
	assert.Equal(t, 0, r.Summary.TotalFields)
	assert.Equal(t, float64(0), r.Summary.OverallCompletion)
	assert.Empty(t, r.Employees)
}

// The overall completion is weighted by fields, not averaged per employee:
// one 3/3 and one 1/3 employee give 4/6 = 66.67, not (100+33.33)/2.
func TestBuildReportWeightedCompletion(t *testing.T) {
	r := newEngine().BuildReport([]models.Employee{
		completeUSA(1),
		{
			"id": float64(2), "name": "Jane", "last_name": "Roe", "country": "USA",
			"salary": float64(50000),
		},
	})

	assert.Equal(t, 2, r.Summary.TotalEmployees)
	assert.Equal(t, 6, r.Summary.TotalFields)
	assert.Equal(t, 4, r.Summary.CompletedFields)
	assert.Equal(t, 2, r.Summary.IncompleteFields)
	assert.Equal(t, 66.67, r.Summary.OverallCompletion)
}

func TestBuildReportPreservesOrder(t *testing.T) {
	employees := []models.Employee{
		completeUSA(3),
		completeUSA(1),
		completeUSA(2),
	}
	r := newEngine().BuildReport(employees)

	require.Len(t, r.Employees, 3)
	for i, e := range employees {
		want, _ := e.ID()
		require.NotNil(t, r.Employees[i].EmployeeID)
		assert.Equal(t, want, *r.Employees[i].EmployeeID)
	}
}

func TestInvariantCompletedNeverExceedsTotal(t *testing.T) {
	employees := []models.Employee{
		completeUSA(1),
		{"country": "USA"},
		{"country": "Germany", "tax_id": "nope"},
		{"country": "Mars"},
		{},
	}
	r := newEngine().BuildReport(employees)

	assert.LessOrEqual(t, r.Summary.CompletedFields, r.Summary.TotalFields)
	for _, c := range r.Employees {
		assert.LessOrEqual(t, c.CompletedFields, c.TotalFields)
	}
}

func TestBuildReportMixedCountries(t *testing.T) {
	r := newEngine().BuildReport([]models.Employee{
		completeUSA(1),
		{
			"id": float64(2), "name": "Anna", "last_name": "Schmidt", "country": "Germany",
			"salary": float64(60000), "goal": "g", "tax_id": "DE123456789",
		},
	})

	assert.Equal(t, 6, r.Summary.TotalFields)
	assert.Equal(t, 6, r.Summary.CompletedFields)
	assert.Equal(t, float64(100), r.Summary.OverallCompletion)
}
