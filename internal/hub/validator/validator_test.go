package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrhub/internal/hub/models"
)

func TestUSAComplete(t *testing.T) {
	results := USA{}.Validate(models.Employee{
		"ssn":     "123-45-6789",
		"salary":  float64(75000),
		"address": "123 Main St",
	})

	require.Len(t, results, 3)
	for field, r := range results {
		assert.True(t, r.Complete, "field %s should be complete", field)
		assert.NotEmpty(t, r.Message)
	}
}

func TestUSASalary(t *testing.T) {
	tests := []struct {
		name     string
		salary   any
		absent   bool
		complete bool
	}{
		{name: "positive number", salary: float64(50000), complete: true},
		{name: "numeric string", salary: "50000", complete: true},
		{name: "zero", salary: float64(0)},
		{name: "negative", salary: float64(-1)},
		{name: "non-numeric string", salary: "a lot"},
		{name: "null", salary: nil},
		{name: "absent", absent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.Employee{"ssn": "x", "address": "y"}
			if !tt.absent {
				e["salary"] = tt.salary
			}
			results := USA{}.Validate(e)
			assert.Equal(t, tt.complete, results["salary"].Complete)
		})
	}
}

func TestUSAEmptyStrings(t *testing.T) {
	results := USA{}.Validate(models.Employee{
		"ssn":     "",
		"salary":  float64(100),
		"address": "",
	})

	assert.False(t, results["ssn"].Complete)
	assert.False(t, results["address"].Complete)
	assert.True(t, results["salary"].Complete)
}

func TestGermanyComplete(t *testing.T) {
	results := Germany{}.Validate(models.Employee{
		"salary": float64(60000),
		"goal":   "learn Go",
		"tax_id": "DE123456789",
	})

	require.Len(t, results, 3)
	for field, r := range results {
		assert.True(t, r.Complete, "field %s should be complete", field)
	}
}

func TestGermanyTaxID(t *testing.T) {
	tests := []struct {
		name  string
		taxID string
		valid bool
	}{
		{"valid", "DE123456789", true},
		{"eight digits", "DE12345678", false},
		{"ten digits", "DE1234567890", false},
		{"missing prefix", "123456789", false},
		{"wrong prefix", "FR123456789", false},
		{"letters after prefix", "DE12345678X", false},
		{"trailing garbage", "DE123456789x", false},
		{"empty", "", false},
		{"arbitrary", "INVALID", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Germany{}.Validate(models.Employee{
				"salary": float64(1000),
				"goal":   "g",
				"tax_id": tt.taxID,
			})
			assert.Equal(t, tt.valid, results["tax_id"].Complete)
			if !tt.valid {
				// only the tax_id rule fails
				assert.True(t, results["salary"].Complete)
				assert.True(t, results["goal"].Complete)
			}
		})
	}
}

func TestRequiredFieldsMatchValidateOutput(t *testing.T) {
	for _, v := range []CountryValidator{USA{}, Germany{}} {
		results := v.Validate(models.Employee{})
		require.Len(t, results, len(v.RequiredFields()))
		for _, f := range v.RequiredFields() {
			assert.Contains(t, results, f)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Resolve("USA")
	assert.True(t, ok)
	_, ok = r.Resolve("Germany")
	assert.True(t, ok)
	_, ok = r.Resolve("France")
	assert.False(t, ok, "unknown country resolves to no validator, not an error")

	assert.ElementsMatch(t, []string{"USA", "Germany"}, r.Countries())
}
