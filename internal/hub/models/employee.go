package models

import (
	"strconv"
	"strings"
)

// Employee is the hub's transient view of an authoritative employee record.
// The attribute set is country-dependent, so it stays a map exactly as
// decoded from the HR API; accessors below handle the loose typing.
type Employee map[string]any

// ID returns the employee identifier if present and numeric.
func (e Employee) ID() (int64, bool) {
	switch v := e["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// Country returns the country code, empty when absent.
func (e Employee) Country() string {
	s, _ := e["country"].(string)
	return s
}

// FullName joins name and last_name the way the checklist displays it.
func (e Employee) FullName() string {
	name, _ := e["name"].(string)
	last, _ := e["last_name"].(string)
	return strings.TrimSpace(name + " " + last)
}

// String returns a string field, empty when absent or not a string.
func (e Employee) String(field string) string {
	s, _ := e[field].(string)
	return s
}

// Number returns a field as float64, accepting JSON numbers and numeric
// strings. ok is false for absent, null or non-numeric values.
func (e Employee) Number(field string) (float64, bool) {
	switch v := e[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
