package validator

import "hrhub/internal/hub/models"

// USA requires a non-empty SSN, a positive numeric salary and a non-empty
// address.
type USA struct{}

func (USA) RequiredFields() []string {
	return []string{"ssn", "salary", "address"}
}

func (USA) Validate(e models.Employee) FieldResults {
	results := make(FieldResults, 3)

	if e.String("ssn") != "" {
		results["ssn"] = FieldResult{Complete: true, Message: "SSN is present."}
	} else {
		results["ssn"] = FieldResult{Message: "SSN is required for US employees."}
	}

	results["salary"] = salaryResult(e)

	if e.String("address") != "" {
		results["address"] = FieldResult{Complete: true, Message: "Address is present."}
	} else {
		results["address"] = FieldResult{Message: "Address is required for US employees."}
	}

	return results
}

// salaryResult is shared by every country: salary must be numeric and
// strictly positive. Null, absent, non-numeric, zero and negative values
// are all incomplete.
func salaryResult(e models.Employee) FieldResult {
	if salary, ok := e.Number("salary"); ok && salary > 0 {
		return FieldResult{Complete: true, Message: "Salary is set."}
	}
	return FieldResult{Message: "Salary is required and must be greater than 0."}
}
