// Package validator holds the per-country completeness rules. Each country
// is one CountryValidator implementation plus one registry entry; no other
// component changes when a country is added.
package validator

import "hrhub/internal/hub/models"

// FieldResult is the outcome of one field rule.
type FieldResult struct {
	Complete bool   `json:"complete"`
	Message  string `json:"message"`
}

// FieldResults maps field name to its rule outcome.
type FieldResults map[string]FieldResult

// CountryValidator scores field completeness for one country. Implementations
// are stateless and pure; every field rule is independent.
type CountryValidator interface {
	// RequiredFields lists the checked fields in display order.
	RequiredFields() []string
	Validate(e models.Employee) FieldResults
}

// Registry resolves validators by country code.
type Registry struct {
	validators map[string]CountryValidator
}

// NewRegistry returns a registry preloaded with every supported country.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]CountryValidator)}
	r.Register("USA", USA{})
	r.Register("Germany", Germany{})
	return r
}

// Register adds or replaces the validator for a country code.
func (r *Registry) Register(country string, v CountryValidator) {
	r.validators[country] = v
}

// Resolve returns the validator for a country, or false when none is
// registered. An unknown country is not an error: it yields an empty
// checklist downstream.
func (r *Registry) Resolve(country string) (CountryValidator, bool) {
	v, ok := r.validators[country]
	return v, ok
}

// Countries lists the registered country codes.
func (r *Registry) Countries() []string {
	out := make([]string, 0, len(r.validators))
	for c := range r.validators {
		out = append(out, c)
	}
	return out
}
