package models

// Employee is the authoritative employee record. Country-specific columns
// are plain strings left empty when they do not apply to the record's
// country; ToCountryMap filters them out of outbound snapshots.
type Employee struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	Salary   float64 `json:"salary"`
	Country  string  `json:"country"`
	SSN      string  `json:"ssn,omitempty"`
	Address  string  `json:"address,omitempty"`
	Goal     string  `json:"goal,omitempty"`
	TaxID    string  `json:"tax_id,omitempty"`
}

// Update carries a partial mutation. Nil pointers mean "field not
// submitted"; the changed-fields diff only considers submitted fields.
type Update struct {
	Name     *string  `json:"name"`
	LastName *string  `json:"last_name"`
	Salary   *float64 `json:"salary"`
	Country  *string  `json:"country"`
	SSN      *string  `json:"ssn"`
	Address  *string  `json:"address"`
	Goal     *string  `json:"goal"`
	TaxID    *string  `json:"tax_id"`
}

// ToCountryMap returns the snapshot published in event envelopes: the base
// fields plus only the extra fields declared for the record's country.
func (e Employee) ToCountryMap(extraFields []string) map[string]any {
	m := map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"last_name": e.LastName,
		"salary":    e.Salary,
		"country":   e.Country,
	}
	for _, f := range extraFields {
		if v, ok := e.field(f); ok {
			m[f] = v
		}
	}
	return m
}

func (e Employee) field(name string) (string, bool) {
	switch name {
	case "ssn":
		return e.SSN, true
	case "address":
		return e.Address, true
	case "goal":
		return e.Goal, true
	case "tax_id":
		return e.TaxID, true
	}
	return "", false
}

// Apply writes the submitted fields of u onto e and returns the names of
// fields whose value actually changed, in a stable order.
func (e *Employee) Apply(u Update) []string {
	var changed []string

	if u.Name != nil && *u.Name != e.Name {
		e.Name = *u.Name
		changed = append(changed, "name")
	}
	if u.LastName != nil && *u.LastName != e.LastName {
		e.LastName = *u.LastName
		changed = append(changed, "last_name")
	}
	if u.Salary != nil && *u.Salary != e.Salary {
		e.Salary = *u.Salary
		changed = append(changed, "salary")
	}
	if u.Country != nil && *u.Country != e.Country {
		e.Country = *u.Country
		changed = append(changed, "country")
	}
	if u.SSN != nil && *u.SSN != e.SSN {
		e.SSN = *u.SSN
		changed = append(changed, "ssn")
	}
	if u.Address != nil && *u.Address != e.Address {
		e.Address = *u.Address
		changed = append(changed, "address")
	}
	if u.Goal != nil && *u.Goal != e.Goal {
		e.Goal = *u.Goal
		changed = append(changed, "goal")
	}
	if u.TaxID != nil && *u.TaxID != e.TaxID {
		e.TaxID = *u.TaxID
		changed = append(changed, "tax_id")
	}

	return changed
}
