// Package rules declares which employee fields exist per country beyond the
// common base set. Request validation and snapshot filtering both derive
// from this map, so adding a country is one entry here plus a hub-side
// validator.
package rules

// Base fields shared by every country.
var baseFields = []string{"id", "name", "last_name", "salary", "country"}

var countryFields = map[string][]string{
	"USA":     {"ssn", "address"},
	"Germany": {"goal", "tax_id"},
}

// Provider resolves per-country field sets.
type Provider struct{}

// NewProvider returns the rule provider. It is stateless; a single instance
// is shared by handler and service.
func NewProvider() Provider {
	return Provider{}
}

// FieldsFor returns the country-specific field names for a country, nil for
// unknown countries.
func (Provider) FieldsFor(country string) []string {
	return countryFields[country]
}

// BaseFields returns the field names common to all countries.
func (Provider) BaseFields() []string {
	return baseFields
}

// SupportedCountries lists the countries with declared rule sets.
func (Provider) SupportedCountries() []string {
	out := make([]string, 0, len(countryFields))
	for c := range countryFields {
		out = append(out, c)
	}
	return out
}

// Supported reports whether a country has a declared rule set.
func (Provider) Supported(country string) bool {
	_, ok := countryFields[country]
	return ok
}
