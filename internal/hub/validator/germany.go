package validator

import (
	"regexp"

	"hrhub/internal/hub/models"
)

// Germany requires a positive numeric salary, a non-empty goal and a tax ID
// of exactly "DE" followed by 9 decimal digits.
type Germany struct{}

var germanTaxID = regexp.MustCompile(`^DE\d{9}$`)

func (Germany) RequiredFields() []string {
	return []string{"salary", "goal", "tax_id"}
}

func (Germany) Validate(e models.Employee) FieldResults {
	results := make(FieldResults, 3)

	results["salary"] = salaryResult(e)

	if e.String("goal") != "" {
		results["goal"] = FieldResult{Complete: true, Message: "Goal is defined."}
	} else {
		results["goal"] = FieldResult{Message: "Goal is required for German employees."}
	}

	if germanTaxID.MatchString(e.String("tax_id")) {
		results["tax_id"] = FieldResult{Complete: true, Message: "Tax ID is valid."}
	} else {
		results["tax_id"] = FieldResult{Message: "Tax ID must be in format DE + 9 digits (e.g. DE123456789)."}
	}

	return results
}
